package validator_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nyumbani/shared/constant"
	"nyumbani/shared/failure"
	"nyumbani/shared/timezone"
	"nyumbani/shared/validator"
)

type contactRequest struct {
	Phone string `json:"phone" validate:"required,tzmobile"`
}

type viewingRequest struct {
	PreferredDate string `json:"preferred_date" validate:"required,futuredate"`
	PreferredTime string `json:"preferred_time" validate:"required,viewslot"`
}

func TestValidate_TZMobile(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "local format", phone: "0712345678", wantErr: false},
		{name: "international format", phone: "+255712345678", wantErr: false},
		{name: "six prefix", phone: "0652345678", wantErr: false},
		{name: "too short", phone: "123456", wantErr: true},
		{name: "landline prefix", phone: "0222345678", wantErr: true},
		{name: "wrong country code", phone: "+254712345678", wantErr: true},
		{name: "letters", phone: "07123456ab", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := contactRequest{Phone: tt.phone}
			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, failure.GetFields(err), "phone")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ViewingSlot(t *testing.T) {
	tomorrow := timezone.Now().AddDate(0, 0, 1).Format(constant.DateOnlyFormat)

	tests := []struct {
		name    string
		slot    string
		wantErr bool
	}{
		{name: "morning slot", slot: "09:00", wantErr: false},
		{name: "afternoon slot", slot: "16:00", wantErr: false},
		{name: "last slot", slot: "17:00", wantErr: false},
		{name: "lunch hour excluded", slot: "13:00", wantErr: true},
		{name: "half hours excluded", slot: "09:30", wantErr: true},
		{name: "before opening", slot: "08:00", wantErr: true},
		{name: "after closing", slot: "18:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := viewingRequest{PreferredDate: tomorrow, PreferredTime: tt.slot}
			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, failure.GetFields(err), "preferred_time")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_FutureDate(t *testing.T) {
	now := timezone.Now()

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "tomorrow", date: now.AddDate(0, 0, 1).Format(constant.DateOnlyFormat), wantErr: false},
		{name: "next month", date: now.AddDate(0, 1, 0).Format(constant.DateOnlyFormat), wantErr: false},
		{name: "today is not future", date: now.Format(constant.DateOnlyFormat), wantErr: true},
		{name: "yesterday", date: now.AddDate(0, 0, -1).Format(constant.DateOnlyFormat), wantErr: true},
		{name: "not a date", date: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := viewingRequest{PreferredDate: tt.date, PreferredTime: "10:00"}
			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, failure.GetFields(err), "preferred_date")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_DecodesAndValidatesBody(t *testing.T) {
	body := strings.NewReader(`{"phone": "0712345678"}`)

	var req contactRequest
	assert.NoError(t, validator.Validate(body, &req))
	assert.Equal(t, "0712345678", req.Phone)
}

func TestValidate_RejectsMalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"phone": `)

	var req contactRequest
	assert.Error(t, validator.Validate(body, &req))
}

func TestValidateVar_Month(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2026-08", "datetime=2006-01"))
	assert.Error(t, validator.ValidateVar("August", "datetime=2006-01"))
	assert.Error(t, validator.ValidateVar("2026-13", "datetime=2006-01"))
}

func TestViewingSlots_Ordered(t *testing.T) {
	slots := validator.ViewingSlots()

	assert.Len(t, slots, 8)
	assert.NotContains(t, slots, "13:00")

	for i := 1; i < len(slots); i++ {
		prev, err := time.Parse(constant.TimeSlotFormat, slots[i-1])
		assert.NoError(t, err)

		curr, err := time.Parse(constant.TimeSlotFormat, slots[i])
		assert.NoError(t, err)

		assert.True(t, curr.After(prev))
	}
}
