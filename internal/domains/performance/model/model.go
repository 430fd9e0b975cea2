package model

import "nyumbani/shared/model"

const (
	TableName  = "employee_performance"
	EntityName = "employee_performance"

	FieldID                 = "id"
	FieldAdminID            = "admin_id"
	FieldMonth              = "month"
	FieldPropertiesManaged  = "properties_managed"
	FieldBookingsReceived   = "bookings_received"
	FieldBookingsApproved   = "bookings_approved"
	FieldBookingsCompleted  = "bookings_completed"
	FieldConversionRate     = "conversion_rate"
	FieldResponseTimeHours  = "response_time_hours"
	FieldSatisfactionRating = "satisfaction_rating"
	FieldRevenue            = "revenue"
	FieldOccupancyRate      = "occupancy_rate"
)

// EmployeePerformance is one admin's KPI row for one month, keyed on
// (admin_id, month). Rows are only ever rewritten by upsert.
type EmployeePerformance struct {
	ID                 string  `db:"id"`
	AdminID            string  `db:"admin_id"`
	Month              string  `db:"month"`
	PropertiesManaged  int     `db:"properties_managed"`
	BookingsReceived   int     `db:"bookings_received"`
	BookingsApproved   int     `db:"bookings_approved"`
	BookingsCompleted  int     `db:"bookings_completed"`
	ConversionRate     float64 `db:"conversion_rate"`
	ResponseTimeHours  float64 `db:"response_time_hours"`
	SatisfactionRating float64 `db:"satisfaction_rating"`
	Revenue            float64 `db:"revenue"`
	OccupancyRate      float64 `db:"occupancy_rate"`
	model.Metadata
}
