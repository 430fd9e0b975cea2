package model

import (
	"sort"
	"time"

	"nyumbani/shared/constant"
)

// Score weights. Response time contributes inversely: the faster an admin
// replies, the more of the 10-point allowance is left.
const (
	weightConversion   = 0.3
	weightResponseTime = 0.2
	weightSatisfaction = 0.25
	weightOccupancy    = 0.25

	responseTimeAllowanceHours = 10.0
)

// Score computes the composite KPI score for one month's row.
func (p *EmployeePerformance) Score() float64 {
	responseComponent := responseTimeAllowanceHours - p.ResponseTimeHours
	if responseComponent < 0 {
		responseComponent = 0
	}

	return p.ConversionRate*weightConversion +
		responseComponent*weightResponseTime +
		p.SatisfactionRating*weightSatisfaction +
		p.OccupancyRate*weightOccupancy
}

// Ranked pairs a performance row with its score and standing.
type Ranked struct {
	EmployeePerformance
	ScoreValue float64 `json:"score"`
	Rank       int     `json:"rank"`
}

// Rank orders rows by score descending and assigns 1-based ranks, rank 1
// being the highest score. The sort is stable so equal scores keep their
// input order.
func Rank(rows []EmployeePerformance) []Ranked {
	ranked := make([]Ranked, len(rows))
	for i, row := range rows {
		ranked[i] = Ranked{EmployeePerformance: row, ScoreValue: row.Score()}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreValue > ranked[j].ScoreValue
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// Trend is the percent change of one metric against the previous month.
type Trend struct {
	Metric   string  `json:"metric"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Delta    float64 `json:"delta_percent"`
}

// TrendDelta returns the percent change from previous to current. A missing
// or zero previous value yields 0 rather than a division blow-up.
func TrendDelta(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}

	return (current - previous) / previous * 100
}

// Trends compares a month's row against the immediately preceding month.
// A nil previous row produces all-zero deltas.
func Trends(current EmployeePerformance, previous *EmployeePerformance) []Trend {
	prev := EmployeePerformance{}
	if previous != nil {
		prev = *previous
	}

	return []Trend{
		{Metric: FieldConversionRate, Current: current.ConversionRate, Previous: prev.ConversionRate, Delta: TrendDelta(current.ConversionRate, prev.ConversionRate)},
		{Metric: FieldResponseTimeHours, Current: current.ResponseTimeHours, Previous: prev.ResponseTimeHours, Delta: TrendDelta(current.ResponseTimeHours, prev.ResponseTimeHours)},
		{Metric: FieldSatisfactionRating, Current: current.SatisfactionRating, Previous: prev.SatisfactionRating, Delta: TrendDelta(current.SatisfactionRating, prev.SatisfactionRating)},
		{Metric: FieldOccupancyRate, Current: current.OccupancyRate, Previous: prev.OccupancyRate, Delta: TrendDelta(current.OccupancyRate, prev.OccupancyRate)},
		{Metric: FieldRevenue, Current: current.Revenue, Previous: prev.Revenue, Delta: TrendDelta(current.Revenue, prev.Revenue)},
	}
}

// PreviousMonth returns the month immediately before the given "YYYY-MM"
// month, or an empty string when the input does not parse.
func PreviousMonth(month string) string {
	parsed, err := time.Parse(constant.MonthFormat, month)
	if err != nil {
		return ""
	}

	return parsed.AddDate(0, -1, 0).Format(constant.MonthFormat)
}
