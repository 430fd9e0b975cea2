package model

import (
	"database/sql"

	"nyumbani/shared/model"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking_request"

	FieldID             = "id"
	FieldPropertyID     = "property_id"
	FieldTenantID       = "tenant_id"
	FieldAdminID        = "admin_id"
	FieldTenantName     = "tenant_name"
	FieldTenantPhone    = "tenant_phone"
	FieldTenantEmail    = "tenant_email"
	FieldPreferredDate  = "preferred_date"
	FieldPreferredTime  = "preferred_time"
	FieldMessage        = "message"
	FieldStatus         = "status"
	FieldAdminResponse  = "admin_response"
	FieldScheduledDate  = "scheduled_date"
	FieldFeedbackRating = "feedback_rating"
	FieldFeedbackNote   = "feedback_comment"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDeclined  = "declined"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// terminalStatuses are the end states of the lifecycle. Requests never
// leave them and are never deleted.
var terminalStatuses = map[string]struct{}{
	StatusDeclined:  {},
	StatusCompleted: {},
	StatusCancelled: {},
}

func IsTerminal(status string) bool {
	_, ok := terminalStatuses[status]

	return ok
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusDeclined, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

type BookingRequest struct {
	ID              string          `db:"id"`
	PropertyID      string          `db:"property_id"`
	TenantID        string          `db:"tenant_id"`
	AdminID         string          `db:"admin_id"`
	TenantName      string          `db:"tenant_name"`
	TenantPhone     string          `db:"tenant_phone"`
	TenantEmail     string          `db:"tenant_email"`
	PreferredDate   string          `db:"preferred_date"`
	PreferredTime   string          `db:"preferred_time"`
	Message         string          `db:"message"`
	Status          string          `db:"status"`
	AdminResponse   sql.NullString  `db:"admin_response"`
	ScheduledDate   sql.NullString  `db:"scheduled_date"`
	FeedbackRating  sql.NullInt64   `db:"feedback_rating"`
	FeedbackComment sql.NullString  `db:"feedback_comment"`
	model.Metadata
}
