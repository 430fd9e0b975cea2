package dto

import (
	"github.com/google/uuid"

	"nyumbani/internal/domains/performance/model"
	"nyumbani/shared"
	gDto "nyumbani/shared/dto"
	gModel "nyumbani/shared/model"
	"nyumbani/shared/timezone"
)

// UpsertPerformanceRequest carries one admin's KPI figures for one month.
// Upserting the same (admin_id, month) pair rewrites the row.
type UpsertPerformanceRequest struct {
	AdminID            string  `json:"admin_id"            validate:"required,uuid"`
	Month              string  `json:"month"               validate:"required,datetime=2006-01"`
	PropertiesManaged  int     `json:"properties_managed"  validate:"omitempty,gte=0"`
	BookingsReceived   int     `json:"bookings_received"   validate:"omitempty,gte=0"`
	BookingsApproved   int     `json:"bookings_approved"   validate:"omitempty,gte=0"`
	BookingsCompleted  int     `json:"bookings_completed"  validate:"omitempty,gte=0"`
	ConversionRate     float64 `json:"conversion_rate"     validate:"omitempty,gte=0"`
	ResponseTimeHours  float64 `json:"response_time_hours" validate:"omitempty,gte=0"`
	SatisfactionRating float64 `json:"satisfaction_rating" validate:"omitempty,gte=0,lte=5"`
	Revenue            float64 `json:"revenue"             validate:"omitempty,gte=0"`
	OccupancyRate      float64 `json:"occupancy_rate"      validate:"omitempty,gte=0"`
}

func (u *UpsertPerformanceRequest) ToModel(user string) model.EmployeePerformance {
	return model.EmployeePerformance{
		ID:                 uuid.NewString(),
		AdminID:            u.AdminID,
		Month:              u.Month,
		PropertiesManaged:  u.PropertiesManaged,
		BookingsReceived:   u.BookingsReceived,
		BookingsApproved:   u.BookingsApproved,
		BookingsCompleted:  u.BookingsCompleted,
		ConversionRate:     u.ConversionRate,
		ResponseTimeHours:  u.ResponseTimeHours,
		SatisfactionRating: u.SatisfactionRating,
		Revenue:            u.Revenue,
		OccupancyRate:      u.OccupancyRate,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PerformanceResponse struct {
	ID                 string  `json:"id"`
	AdminID            string  `json:"admin_id"`
	Month              string  `json:"month"`
	PropertiesManaged  int     `json:"properties_managed"`
	BookingsReceived   int     `json:"bookings_received"`
	BookingsApproved   int     `json:"bookings_approved"`
	BookingsCompleted  int     `json:"bookings_completed"`
	ConversionRate     float64 `json:"conversion_rate"`
	ResponseTimeHours  float64 `json:"response_time_hours"`
	SatisfactionRating float64 `json:"satisfaction_rating"`
	Revenue            float64 `json:"revenue"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	Score              float64 `json:"score"`
	gDto.Metadata
}

func (r *PerformanceResponse) FromModel(mod model.EmployeePerformance) {
	r.ID = mod.ID
	r.AdminID = mod.AdminID
	r.Month = mod.Month
	r.PropertiesManaged = mod.PropertiesManaged
	r.BookingsReceived = mod.BookingsReceived
	r.BookingsApproved = mod.BookingsApproved
	r.BookingsCompleted = mod.BookingsCompleted
	r.ConversionRate = mod.ConversionRate
	r.ResponseTimeHours = mod.ResponseTimeHours
	r.SatisfactionRating = mod.SatisfactionRating
	r.Revenue = mod.Revenue
	r.OccupancyRate = mod.OccupancyRate
	r.Score = mod.Score()
	r.Metadata.FromModel(mod.Metadata)
}

type GetPerformancesResponse struct {
	Performances []PerformanceResponse `json:"performances"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetPerformancesResponse) FromModels(models []model.EmployeePerformance, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Performances = make([]PerformanceResponse, len(models))
	for i, mod := range models {
		r.Performances[i].FromModel(mod)
	}
}

type ScoreboardEntry struct {
	PerformanceResponse
	Rank   int           `json:"rank"`
	Trends []model.Trend `json:"trends"`
}

type ScoreboardResponse struct {
	Month   string            `json:"month"`
	Entries []ScoreboardEntry `json:"entries"`
}
