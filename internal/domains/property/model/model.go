package model

import (
	"github.com/lib/pq"

	"nyumbani/shared/model"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID              = "id"
	FieldAdminID         = "admin_id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldPropertyType    = "property_type"
	FieldBedrooms        = "bedrooms"
	FieldBathrooms       = "bathrooms"
	FieldRentAmount      = "rent_amount"
	FieldServiceFee      = "service_fee_amount"
	FieldTotalAmount     = "total_amount"
	FieldCity            = "city"
	FieldDistrict        = "district"
	FieldArea            = "area"
	FieldAddress         = "address"
	FieldImages          = "images"
	FieldAmenities       = "amenities"
	FieldIsAvailable     = "is_available"
	FieldFeatured        = "featured"
	FieldViewsCount      = "views_count"
	FieldInquiriesCount  = "inquiries_count"
	FieldBookingsCount   = "bookings_count"
)

// ServiceFeeRate is the marketplace cut charged on top of the monthly rent.
// The fee and total are derived columns, never accepted from clients.
const ServiceFeeRate = 0.2

type Property struct {
	ID               string         `db:"id"`
	AdminID          string         `db:"admin_id"`
	Title            string         `db:"title"`
	Description      string         `db:"description"`
	PropertyType     string         `db:"property_type"`
	Bedrooms         int            `db:"bedrooms"`
	Bathrooms        int            `db:"bathrooms"`
	RentAmount       float64        `db:"rent_amount"`
	ServiceFeeAmount float64        `db:"service_fee_amount"`
	TotalAmount      float64        `db:"total_amount"`
	City             string         `db:"city"`
	District         string         `db:"district"`
	Area             string         `db:"area"`
	Address          string         `db:"address"`
	Images           pq.StringArray `db:"images"`
	Amenities        pq.StringArray `db:"amenities"`
	IsAvailable      bool           `db:"is_available"`
	Featured         bool           `db:"featured"`
	ViewsCount       int            `db:"views_count"`
	InquiriesCount   int            `db:"inquiries_count"`
	BookingsCount    int            `db:"bookings_count"`
	model.Metadata
}

// CalculateFees derives the service fee and tenant-facing total from the
// monthly rent. No rounding is applied.
func CalculateFees(rentAmount float64) (serviceFee, total float64) {
	serviceFee = rentAmount * ServiceFeeRate
	total = rentAmount + serviceFee

	return serviceFee, total
}
