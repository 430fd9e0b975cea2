package dto

import (
	"database/sql"

	"github.com/google/uuid"

	"nyumbani/internal/domains/booking/model"
	"nyumbani/shared"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	gModel "nyumbani/shared/model"
	"nyumbani/shared/timezone"
)

type CreateBookingRequest struct {
	PropertyID    string `json:"property_id"    validate:"required,uuid"`
	TenantName    string `json:"tenant_name"    validate:"required,max=100"`
	TenantPhone   string `json:"tenant_phone"   validate:"required,tzmobile"`
	TenantEmail   string `json:"tenant_email"   validate:"required,email"`
	PreferredDate string `json:"preferred_date" validate:"required,futuredate"`
	PreferredTime string `json:"preferred_time" validate:"required,viewslot"`
	Message       string `json:"message"        validate:"omitempty,max=1000"`
}

// ToModel builds a pending request. Newly created requests are always
// pending regardless of anything the client sends.
func (c *CreateBookingRequest) ToModel(tenantID, adminID string) model.BookingRequest {
	return model.BookingRequest{
		ID:            uuid.NewString(),
		PropertyID:    c.PropertyID,
		TenantID:      tenantID,
		AdminID:       adminID,
		TenantName:    c.TenantName,
		TenantPhone:   c.TenantPhone,
		TenantEmail:   c.TenantEmail,
		PreferredDate: c.PreferredDate,
		PreferredTime: c.PreferredTime,
		Message:       c.Message,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  tenantID,
			ModifiedBy: tenantID,
		},
	}
}

type TransitionRequest struct {
	Status        string `json:"status"         validate:"required,oneof=pending approved declined completed cancelled"`
	AdminResponse string `json:"admin_response" validate:"omitempty,max=1000"`
	ScheduledDate string `json:"scheduled_date" validate:"omitempty"`
}

func (t *TransitionRequest) ToTransition() model.Transition {
	return model.Transition{
		Status:        t.Status,
		AdminResponse: t.AdminResponse,
		ScheduledDate: t.ScheduledDate,
	}
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID              string `json:"id"`
	PropertyID      string `json:"property_id"`
	TenantID        string `json:"tenant_id"`
	AdminID         string `json:"admin_id"`
	TenantName      string `json:"tenant_name"`
	TenantPhone     string `json:"tenant_phone"`
	TenantEmail     string `json:"tenant_email"`
	PreferredDate   string `json:"preferred_date"`
	PreferredTime   string `json:"preferred_time"`
	Message         string `json:"message"`
	Status          string `json:"status"`
	AdminResponse   string `json:"admin_response,omitempty"`
	ScheduledDate   string `json:"scheduled_date,omitempty"`
	FeedbackRating  int    `json:"feedback_rating,omitempty"`
	FeedbackComment string `json:"feedback_comment,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.BookingRequest) {
	r.ID = mod.ID
	r.PropertyID = mod.PropertyID
	r.TenantID = mod.TenantID
	r.AdminID = mod.AdminID
	r.TenantName = mod.TenantName
	r.TenantPhone = mod.TenantPhone
	r.TenantEmail = mod.TenantEmail
	r.PreferredDate = mod.PreferredDate
	r.PreferredTime = mod.PreferredTime
	r.Message = mod.Message
	r.Status = mod.Status
	r.AdminResponse = nullString(mod.AdminResponse)
	r.ScheduledDate = nullString(mod.ScheduledDate)

	if mod.FeedbackRating.Valid {
		r.FeedbackRating = int(mod.FeedbackRating.Int64)
	}

	r.FeedbackComment = nullString(mod.FeedbackComment)
	r.Metadata.FromModel(mod.Metadata)
}

func nullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}

	return ns.String
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to Kafka on create and on every
// status change. Notification delivery happens downstream.
type BookingEvent struct {
	EventType   string `json:"event_type"`
	BookingID   string `json:"booking_id"`
	PropertyID  string `json:"property_id"`
	TenantID    string `json:"tenant_id"`
	AdminID     string `json:"admin_id"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"`
}

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

func NewBookingEvent(eventType string, mod model.BookingRequest) BookingEvent {
	return BookingEvent{
		EventType:  eventType,
		BookingID:  mod.ID,
		PropertyID: mod.PropertyID,
		TenantID:   mod.TenantID,
		AdminID:    mod.AdminID,
		Status:     mod.Status,
		OccurredAt: timezone.Now().Format(constant.DateFormat),
	}
}
