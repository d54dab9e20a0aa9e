package processors

import (
	"sort"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/utils"
)

type statsProcessorImpl struct{}

// NewStatsProcessor creates a new instance of StatsProcessor.
func NewStatsProcessor() StatsProcessor {
	return &statsProcessorImpl{}
}

// Compute produces the full statistics snapshot in one pass over the
// collection. Sums stay in integer minor units; only the snapshot's
// accessor methods convert to major units.
func (p *statsProcessorImpl) Compute(records []models.CommerceRecord) models.StatisticsSnapshot {
	snap := models.StatisticsSnapshot{
		TotalCount:     len(records),
		CountsByStatus: make(map[string]int),
	}

	catIdx := make(map[string]int)
	typeIdx := make(map[string]int)
	monthIdx := make(map[string]int)

	for _, r := range records {
		revenue := r.RevenueMinorUnits()
		snap.TotalRevenueMinor += revenue

		// Only statuses actually present appear; absent ones are omitted,
		// not zero-filled.
		if r.Status != "" {
			snap.CountsByStatus[r.Status]++
		}

		snap.ByCategory = bump(snap.ByCategory, catIdx, r.Category, revenue)
		snap.ByDisplayType = bump(snap.ByDisplayType, typeIdx, r.DisplayType, revenue)

		if !r.CreatedAt.IsZero() {
			snap.MonthlyTrend = bumpMonth(snap.MonthlyTrend, monthIdx, utils.MonthKey(r.CreatedAt), revenue)
		}
	}

	sort.Slice(snap.MonthlyTrend, func(i, j int) bool {
		return snap.MonthlyTrend[i].Month < snap.MonthlyTrend[j].Month
	})
	return snap
}

// bump adds one record to a grouped rollup, keeping first-seen key order.
func bump(groups []models.GroupStat, idx map[string]int, key string, revenue int64) []models.GroupStat {
	if i, ok := idx[key]; ok {
		groups[i].Count++
		groups[i].RevenueMinor += revenue
		return groups
	}
	idx[key] = len(groups)
	return append(groups, models.GroupStat{Key: key, Count: 1, RevenueMinor: revenue})
}

func bumpMonth(months []models.MonthStat, idx map[string]int, key string, revenue int64) []models.MonthStat {
	if i, ok := idx[key]; ok {
		months[i].Count++
		months[i].RevenueMinor += revenue
		return months
	}
	idx[key] = len(months)
	return append(months, models.MonthStat{Month: key, Count: 1, RevenueMinor: revenue})
}

// TopRecords ranks records descending by revenue and returns the first n.
// Ties break by input order: the earlier record wins the higher rank. The
// stable sort makes this deterministic, not an artifact.
func (p *statsProcessorImpl) TopRecords(records []models.CommerceRecord, n int) []models.CommerceRecord {
	if n < 0 {
		n = 0
	}
	ranked := make([]models.CommerceRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RevenueMinorUnits() > ranked[j].RevenueMinorUnits()
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopGroups ranks grouped rollup buckets descending by revenue, first-seen
// order breaking ties.
func (p *statsProcessorImpl) TopGroups(groups []models.GroupStat, n int) []models.GroupStat {
	if n < 0 {
		n = 0
	}
	ranked := make([]models.GroupStat, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RevenueMinor > ranked[j].RevenueMinor
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
