package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyumbani/internal/domains/performance/model"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		row  model.EmployeePerformance
		want float64
	}{
		{
			name: "all components contribute",
			row: model.EmployeePerformance{
				ConversionRate:     10,
				ResponseTimeHours:  4,
				SatisfactionRating: 4,
				OccupancyRate:      8,
			},
			// 10*0.3 + (10-4)*0.2 + 4*0.25 + 8*0.25
			want: 7.2,
		},
		{
			name: "slow responders lose the whole response component",
			row: model.EmployeePerformance{
				ConversionRate:     10,
				ResponseTimeHours:  48,
				SatisfactionRating: 4,
				OccupancyRate:      8,
			},
			want: 6,
		},
		{
			name: "zero row scores the full response allowance",
			row:  model.EmployeePerformance{},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.row.Score(), 1e-9)
		})
	}
}

func TestRank(t *testing.T) {
	// Scores: 10*0.3 + (10-5)*0.2 + 5*0.25 + 6*0.25 = 6.75 for Asha,
	// 15*0.3 + (10-2)*0.2 + 4*0.25 + 6*0.25 = 8.6 for Neema.
	asha := model.EmployeePerformance{
		AdminID:            "asha",
		ConversionRate:     10,
		ResponseTimeHours:  5,
		SatisfactionRating: 5,
		OccupancyRate:      6,
	}
	neema := model.EmployeePerformance{
		AdminID:            "neema",
		ConversionRate:     15,
		ResponseTimeHours:  2,
		SatisfactionRating: 4,
		OccupancyRate:      6,
	}

	ranked := model.Rank([]model.EmployeePerformance{asha, neema})

	assert.Len(t, ranked, 2)
	assert.Equal(t, "neema", ranked[0].AdminID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "asha", ranked[1].AdminID)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Greater(t, ranked[0].ScoreValue, ranked[1].ScoreValue)
}

func TestRank_EqualScoresKeepInputOrder(t *testing.T) {
	first := model.EmployeePerformance{AdminID: "first", ConversionRate: 10}
	second := model.EmployeePerformance{AdminID: "second", ConversionRate: 10}

	ranked := model.Rank([]model.EmployeePerformance{first, second})

	assert.Equal(t, "first", ranked[0].AdminID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "second", ranked[1].AdminID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestTrendDelta(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{name: "growth", current: 12, previous: 10, want: 20},
		{name: "decline", current: 8, previous: 10, want: -20},
		{name: "flat", current: 10, previous: 10, want: 0},
		{name: "zero previous yields zero, not a blow-up", current: 12, previous: 0, want: 0},
		{name: "both zero", current: 0, previous: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, model.TrendDelta(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestTrends_NilPreviousMonth(t *testing.T) {
	current := model.EmployeePerformance{
		ConversionRate:     12,
		ResponseTimeHours:  3,
		SatisfactionRating: 4.5,
		Revenue:            2500000,
		OccupancyRate:      80,
	}

	trends := model.Trends(current, nil)

	assert.Len(t, trends, 5)

	for _, trend := range trends {
		assert.Zero(t, trend.Delta, "metric %s", trend.Metric)
		assert.Zero(t, trend.Previous, "metric %s", trend.Metric)
	}
}

func TestTrends_AgainstPreviousMonth(t *testing.T) {
	current := model.EmployeePerformance{ConversionRate: 12, Revenue: 1100000}
	previous := model.EmployeePerformance{ConversionRate: 10, Revenue: 1000000}

	trends := model.Trends(current, &previous)

	byMetric := map[string]model.Trend{}
	for _, trend := range trends {
		byMetric[trend.Metric] = trend
	}

	assert.InDelta(t, 20, byMetric[model.FieldConversionRate].Delta, 1e-9)
	assert.InDelta(t, 10, byMetric[model.FieldRevenue].Delta, 1e-9)
}

func TestPreviousMonth(t *testing.T) {
	assert.Equal(t, "2026-07", model.PreviousMonth("2026-08"))
	assert.Equal(t, "2025-12", model.PreviousMonth("2026-01"))
	assert.Equal(t, "", model.PreviousMonth("August 2026"))
}
