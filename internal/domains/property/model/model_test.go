package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyumbani/internal/domains/property/model"
)

func TestCalculateFees(t *testing.T) {
	tests := []struct {
		name           string
		rentAmount     float64
		wantServiceFee float64
		wantTotal      float64
	}{
		{
			name:           "typical monthly rent",
			rentAmount:     800000,
			wantServiceFee: 160000,
			wantTotal:      960000,
		},
		{
			name:           "rent after an update",
			rentAmount:     1000000,
			wantServiceFee: 200000,
			wantTotal:      1200000,
		},
		{
			name:           "small rent",
			rentAmount:     500,
			wantServiceFee: 100,
			wantTotal:      600,
		},
		{
			name:           "zero rent",
			rentAmount:     0,
			wantServiceFee: 0,
			wantTotal:      0,
		},
		{
			name:           "fractional rent keeps full precision",
			rentAmount:     333333.33,
			wantServiceFee: 66666.666,
			wantTotal:      399999.996,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceFee, total := model.CalculateFees(tt.rentAmount)

			assert.InDelta(t, tt.wantServiceFee, serviceFee, 1e-9)
			assert.InDelta(t, tt.wantTotal, total, 1e-9)
		})
	}
}

func TestCalculateFees_TotalIsRentPlusFee(t *testing.T) {
	serviceFee, total := model.CalculateFees(1200000)

	assert.Equal(t, 1200000*model.ServiceFeeRate, serviceFee)
	assert.Equal(t, 1200000+serviceFee, total)
}
