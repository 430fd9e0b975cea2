package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"tzmobile":    "{field} must be a valid Tanzanian mobile number",
		"viewslot":    "{field} must be an available viewing slot",
		"mimetypes":   "{field} must be one of the following types: {param}",
		"maxfilesize": "{field} must be less than or equal to {param}MB",
		"futuredate":  "{field} must be a date after today",
	}
)

func render(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			return render(valErr)
		}

		return valErrors.Error()
	}

	return err.Error()
}

// fieldMessages flattens validation errors into a field-keyed map. The first
// failing rule per field wins.
func fieldMessages(err error) map[string]string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return nil
	}

	fields := make(map[string]string, len(valErrors))

	for _, valErr := range valErrors {
		field := valErr.Field()
		if _, seen := fields[field]; seen {
			continue
		}

		fields[field] = render(valErr)
	}

	return fields
}
