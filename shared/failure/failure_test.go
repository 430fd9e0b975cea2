package failure_test

import (
	"errors"
	"net/http"
	"nyumbani/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("custom bad request"),
			code:    http.StatusBadRequest,
			message: "custom bad request",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("Access denied"),
			code:    http.StatusForbidden,
			message: "Access denied",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("booking request not found"),
			code:    http.StatusNotFound,
			message: "booking request not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("email already exists"),
			code:    http.StatusConflict,
			message: "email already exists",
		},
		{
			name:    "UnprocessableEntity",
			err:     failure.UnprocessableEntity("property is no longer available"),
			code:    http.StatusUnprocessableEntity,
			message: "property is no longer available",
		},
		{
			name:    "Unimplemented",
			err:     failure.Unimplemented("GetUserByID"),
			code:    http.StatusNotImplemented,
			message: "GetUserByID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.err)
			}
			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}
			if f.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, f.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil input")
	}

	result := failure.BadRequest(errors.New("validation failed"))

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}
	if f.Code != http.StatusBadRequest {
		t.Errorf("expected code to be %d, got %d", http.StatusBadRequest, f.Code)
	}
	if f.Message != "validation failed" {
		t.Errorf("expected message to be 'validation failed', got %s", f.Message)
	}
}

func TestInternalError(t *testing.T) {
	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil input")
	}

	result := failure.InternalError(errors.New("database connection failed"))

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}
	if f.Code != http.StatusInternalServerError {
		t.Errorf("expected code to be %d, got %d", http.StatusInternalServerError, f.Code)
	}
}

func TestValidation(t *testing.T) {
	fields := map[string]string{
		"phone":          "phone must be a valid Tanzanian mobile number",
		"preferred_date": "preferred_date must be a future date",
	}

	result := failure.Validation(fields)

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}
	if f.Code != http.StatusBadRequest {
		t.Errorf("expected code to be %d, got %d", http.StatusBadRequest, f.Code)
	}
	if len(f.Fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(f.Fields))
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    failure.BadRequestFromString("test"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetFields(t *testing.T) {
	fields := map[string]string{"phone": "invalid"}

	if got := failure.GetFields(failure.Validation(fields)); got["phone"] != "invalid" {
		t.Errorf("expected fields to round-trip, got %v", got)
	}

	if got := failure.GetFields(errors.New("plain")); got != nil {
		t.Errorf("expected nil fields for plain errors, got %v", got)
	}

	if got := failure.GetFields(nil); got != nil {
		t.Errorf("expected nil fields for nil error, got %v", got)
	}
}
