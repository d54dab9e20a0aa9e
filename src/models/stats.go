package models

// GroupStat is one grouped rollup bucket. Revenue stays in minor units
// internally; handlers convert at the response boundary.
type GroupStat struct {
	Key          string `json:"key"`
	Count        int    `json:"count"`
	RevenueMinor int64  `json:"revenueMinor"`
}

// MonthStat is one calendar-month bucket of the trend rollup.
// Month is "YYYY-MM".
type MonthStat struct {
	Month        string `json:"month"`
	Count        int    `json:"count"`
	RevenueMinor int64  `json:"revenueMinor"`
}

// StatisticsSnapshot holds every scalar and grouped statistic computed over
// one filtered collection. All sums are integer minor units; only the
// accessor methods produce major-unit floats, bounding rounding error to a
// single conversion per reported figure.
type StatisticsSnapshot struct {
	TotalCount        int            `json:"totalCount"`
	TotalRevenueMinor int64          `json:"totalRevenueMinor"`
	CountsByStatus    map[string]int `json:"countsByStatus"`
	ByCategory        []GroupStat    `json:"byCategory"`
	ByDisplayType     []GroupStat    `json:"byDisplayType"`
	MonthlyTrend      []MonthStat    `json:"monthlyTrend"`
}

// TotalRevenue is the display value of the revenue sum, in major units.
func (s StatisticsSnapshot) TotalRevenue() float64 {
	return float64(s.TotalRevenueMinor) / 100
}

// AverageValue is totalRevenue / totalCount in major units, defined as 0
// for an empty collection.
func (s StatisticsSnapshot) AverageValue() float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.TotalRevenueMinor) / float64(s.TotalCount) / 100
}

// PercentageOfTotal is x's share of total revenue, both in minor units,
// defined as 0 when total revenue is 0.
func (s StatisticsSnapshot) PercentageOfTotal(xMinor int64) float64 {
	if s.TotalRevenueMinor == 0 {
		return 0
	}
	return float64(xMinor) / float64(s.TotalRevenueMinor) * 100
}
