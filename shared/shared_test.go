package shared_test

import (
	"nyumbani/shared"
	"nyumbani/shared/constant"
	"nyumbani/shared/dto"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid 0 string", input: "0", expected: boolPtr(false)},
		{name: "valid TRUE string", input: "TRUE", expected: boolPtr(true)},
		{name: "invalid string returns nil", input: "invalid", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else if result == nil {
				t.Errorf("expected %v, got nil", *tt.expected)
			} else if *result != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, *result)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Title   string `db:"title"`
		City    string `db:"city"`
		NoDBTag string
	}

	data := updateRequest{
		Title:   "Sinza Apartment",
		NoDBTag: "ignored",
	}

	result := shared.TransformFields(data, "admin-1")

	if result["title"] != "Sinza Apartment" {
		t.Errorf("expected title to be transformed, got %v", result["title"])
	}

	if _, exists := result["city"]; exists {
		t.Error("zero-value fields must not be transformed")
	}

	if result[constant.FieldModifiedBy] != "admin-1" {
		t.Errorf("expected modified_by to be admin-1, got %v", result[constant.FieldModifiedBy])
	}

	if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("550e8400-e29b-41d4-a716-446655440000", "id", "booking_requests")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "550e8400-e29b-41d4-a716-446655440000",
				Operator: dto.FilterOperatorEq,
				Table:    "booking_requests",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{name: "prefix only", prefix: "booking:gets", parts: nil, expected: "booking:gets"},
		{name: "one part", prefix: "booking:get", parts: []string{"abc"}, expected: "booking:get:abc"},
		{name: "several parts", prefix: "limiter", parts: []string{"1.2.3.4", "curl"}, expected: "limiter:1.2.3.4:curl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.prefix, tt.parts...)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	filter := shared.FilterByID("tenant-1", "tenant_id", "booking_requests")

	key := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 1, Limit: 10}, filter)

	if !strings.HasPrefix(key, "booking:gets:") {
		t.Errorf("expected key to start with the prefix, got %s", key)
	}

	// Different pagination must never share a key.
	other := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)
	if key == other {
		t.Error("expected distinct keys for distinct pages")
	}

	// Different filters must never share a key either.
	otherFilter := shared.FilterByID("tenant-2", "tenant_id", "booking_requests")
	if key == shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 1, Limit: 10}, otherFilter) {
		t.Error("expected distinct keys for distinct filters")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
