package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"nyumbani/internal/domains/property/model"
	"nyumbani/shared"
	gDto "nyumbani/shared/dto"
	gModel "nyumbani/shared/model"
	"nyumbani/shared/timezone"
)

type CreatePropertyRequest struct {
	Title        string   `json:"title"         validate:"required,max=150"`
	Description  string   `json:"description"   validate:"omitempty,max=2000"`
	PropertyType string   `json:"property_type" validate:"required,max=50"`
	Bedrooms     int      `json:"bedrooms"      validate:"omitempty,min=0"`
	Bathrooms    int      `json:"bathrooms"     validate:"omitempty,min=0"`
	RentAmount   float64  `json:"rent_amount"   validate:"required,gt=0"`
	City         string   `json:"city"          validate:"required,max=100"`
	District     string   `json:"district"      validate:"omitempty,max=100"`
	Area         string   `json:"area"          validate:"omitempty,max=100"`
	Address      string   `json:"address"       validate:"omitempty,max=255"`
	Amenities    []string `json:"amenities"     validate:"omitempty,dive,max=50"`
	Featured     *bool    `json:"featured"      validate:"omitempty"`
	IsAvailable  *bool    `json:"is_available"  validate:"omitempty"`
}

func (c *CreatePropertyRequest) ToModel(adminID, user string) model.Property {
	featured := false
	if c.Featured != nil {
		featured = *c.Featured
	}

	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	serviceFee, total := model.CalculateFees(c.RentAmount)

	return model.Property{
		ID:               uuid.NewString(),
		AdminID:          adminID,
		Title:            c.Title,
		Description:      c.Description,
		PropertyType:     c.PropertyType,
		Bedrooms:         c.Bedrooms,
		Bathrooms:        c.Bathrooms,
		RentAmount:       c.RentAmount,
		ServiceFeeAmount: serviceFee,
		TotalAmount:      total,
		City:             c.City,
		District:         c.District,
		Area:             c.Area,
		Address:          c.Address,
		Images:           []string{},
		Amenities:        c.Amenities,
		IsAvailable:      available,
		Featured:         featured,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePropertyRequest struct {
	Title        string   `db:"title"         json:"title"         validate:"omitempty,max=150"`
	Description  string   `db:"description"   json:"description"   validate:"omitempty,max=2000"`
	PropertyType string   `db:"property_type" json:"property_type" validate:"omitempty,max=50"`
	Bedrooms     *int     `db:"bedrooms"      json:"bedrooms"      validate:"omitempty,min=0"`
	Bathrooms    *int     `db:"bathrooms"     json:"bathrooms"     validate:"omitempty,min=0"`
	RentAmount   *float64 `db:"rent_amount"   json:"rent_amount"   validate:"omitempty,gt=0"`
	City         string   `db:"city"          json:"city"          validate:"omitempty,max=100"`
	District     string   `db:"district"      json:"district"      validate:"omitempty,max=100"`
	Area         string   `db:"area"          json:"area"          validate:"omitempty,max=100"`
	Address      string   `db:"address"       json:"address"       validate:"omitempty,max=255"`
	Featured     *bool    `db:"featured"      json:"featured"      validate:"omitempty"`
	IsAvailable  *bool    `db:"is_available"  json:"is_available"  validate:"omitempty"`
}

type AddImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type AssignAdminBulkRequest struct {
	PropertyIDs []string `json:"property_ids" validate:"required,min=1,dive,uuid"`
	AdminID     string   `json:"admin_id"     validate:"required,uuid"`
}

// SearchPropertiesRequest carries the free-text query, the structured
// criteria, and the current visible-window size. Visible of zero means the
// initial page for the given surface.
type SearchPropertiesRequest struct {
	Query        string   `json:"query"`
	City         string   `json:"city"`
	MinPrice     float64  `json:"min_price"     validate:"omitempty,gte=0"`
	MaxPrice     float64  `json:"max_price"     validate:"omitempty,gte=0"`
	PropertyType string   `json:"property_type"`
	MinBedrooms  int      `json:"min_bedrooms"  validate:"omitempty,gte=0"`
	MinBathrooms int      `json:"min_bathrooms" validate:"omitempty,gte=0"`
	Amenities    []string `json:"amenities"`
	SortBy       string   `json:"sort_by"       validate:"omitempty,oneof=price-low price-high newest featured"`
	Visible      int      `json:"visible"       validate:"omitempty,gte=0"`
	Browse       bool     `json:"browse"`
}

type PropertyResponse struct {
	ID               string   `json:"id"`
	AdminID          string   `json:"admin_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	PropertyType     string   `json:"property_type"`
	Bedrooms         int      `json:"bedrooms"`
	Bathrooms        int      `json:"bathrooms"`
	RentAmount       float64  `json:"rent_amount"`
	ServiceFeeAmount float64  `json:"service_fee_amount"`
	TotalAmount      float64  `json:"total_amount"`
	City             string   `json:"city"`
	District         string   `json:"district"`
	Area             string   `json:"area"`
	Address          string   `json:"address"`
	Images           []string `json:"images"`
	Amenities        []string `json:"amenities"`
	IsAvailable      bool     `json:"is_available"`
	Featured         bool     `json:"featured"`
	ViewsCount       int      `json:"views_count"`
	InquiriesCount   int      `json:"inquiries_count"`
	BookingsCount    int      `json:"bookings_count"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(mod model.Property) {
	r.ID = mod.ID
	r.AdminID = mod.AdminID
	r.Title = mod.Title
	r.Description = mod.Description
	r.PropertyType = mod.PropertyType
	r.Bedrooms = mod.Bedrooms
	r.Bathrooms = mod.Bathrooms
	r.RentAmount = mod.RentAmount
	r.ServiceFeeAmount = mod.ServiceFeeAmount
	r.TotalAmount = mod.TotalAmount
	r.City = mod.City
	r.District = mod.District
	r.Area = mod.Area
	r.Address = mod.Address
	r.Images = mod.Images
	r.Amenities = mod.Amenities
	r.IsAvailable = mod.IsAvailable
	r.Featured = mod.Featured
	r.ViewsCount = mod.ViewsCount
	r.InquiriesCount = mod.InquiriesCount
	r.BookingsCount = mod.BookingsCount
	r.Metadata.FromModel(mod.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}

type SearchPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      int                `json:"total"`
	HasMore    bool               `json:"has_more"`
	Token      uint64             `json:"token"`
}

func (r *SearchPropertiesResponse) FromModels(models []model.Property, total int, hasMore bool, token uint64) {
	r.Total = total
	r.HasMore = hasMore
	r.Token = token

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}
