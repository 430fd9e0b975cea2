package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"

	"nyumbani/shared/constant"
	"nyumbani/shared/failure"
	"nyumbani/shared/timezone"
)

var validate *val.Validate

// tzMobilePattern matches Tanzanian mobile numbers in either the +255 or the
// leading-zero form, e.g. +255712345678 or 0712345678.
var tzMobilePattern = regexp.MustCompile(`^(\+255|0)[67]\d{8}$`)

// viewingSlots are the bookable viewing times: hourly between 09:00 and 17:00,
// skipping the 13:00 lunch hour.
var viewingSlots = map[string]struct{}{
	"09:00": {},
	"10:00": {},
	"11:00": {},
	"12:00": {},
	"14:00": {},
	"15:00": {},
	"16:00": {},
	"17:00": {},
}

func registerTZMobileValidation(field val.FieldLevel) bool {
	phone, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return tzMobilePattern.MatchString(phone)
}

func registerViewingSlotValidation(field val.FieldLevel) bool {
	slot, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, found := viewingSlots[slot]

	return found
}

// ViewingSlots returns the bookable slots in wall-clock order.
func ViewingSlots() []string {
	return []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}
}

// registerFutureDateValidation accepts a YYYY-MM-DD date strictly after
// today's date in the service timezone. Today itself does not pass.
func registerFutureDateValidation(field val.FieldLevel) bool {
	raw, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	date, err := time.Parse(constant.DateOnlyFormat, raw)
	if err != nil {
		return false
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return date.After(today)
}

func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)
	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int64(maxSizeMB * bytesConversion * bytesConversion)

	return file.Size <= maxSizeBytes
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Error maps key on wire names, not Go field names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	if err := validate.RegisterValidation("tzmobile", registerTZMobileValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("viewslot", registerViewingSlotValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("mimetypes", registerMimetypeValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("maxfilesize", registerFileSizeValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("futuredate", registerFutureDateValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		fields := fieldMessages(err)
		if len(fields) > 0 {
			return failure.Validation(fields) //nolint:wrapcheck
		}

		return failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
