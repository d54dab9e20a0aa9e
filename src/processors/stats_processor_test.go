package processors_test

import (
	"math"
	"testing"
	"time"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/processors"
)

func TestCompute_TotalsScenario(t *testing.T) {
	now := time.Now()
	records := []models.CommerceRecord{
		rec("a", "completed", "Books", "ebook", 1999, now),
		rec("b", "pending", "Books", "ebook", 500, now),
	}

	sp := processors.NewStatsProcessor()
	snap := sp.Compute(records)

	if snap.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", snap.TotalCount)
	}
	if snap.TotalRevenueMinor != 2499 {
		t.Errorf("TotalRevenueMinor = %d, want 2499", snap.TotalRevenueMinor)
	}
	if snap.CountsByStatus["completed"] != 1 || snap.CountsByStatus["pending"] != 1 {
		t.Errorf("CountsByStatus = %v", snap.CountsByStatus)
	}
	if _, present := snap.CountsByStatus["refunded"]; present {
		t.Error("absent statuses must be omitted, not zero-filled")
	}
}

func TestCompute_RevenueRespectsQuantity(t *testing.T) {
	r := rec("a", "completed", "Books", "ebook", 1000, time.Now())
	r.Quantity = 3

	snap := processors.NewStatsProcessor().Compute([]models.CommerceRecord{r})
	if snap.TotalRevenueMinor != 3000 {
		t.Errorf("TotalRevenueMinor = %d, want 3000 (amount x quantity)", snap.TotalRevenueMinor)
	}
}

func TestCompute_EmptyCollection(t *testing.T) {
	snap := processors.NewStatsProcessor().Compute(nil)
	if snap.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", snap.TotalCount)
	}
	if got := snap.AverageValue(); got != 0 {
		t.Errorf("AverageValue on empty collection = %f, want 0", got)
	}
	if got := snap.PercentageOfTotal(100); got != 0 {
		t.Errorf("PercentageOfTotal with zero total = %f, want 0", got)
	}
}

func TestCompute_GroupRevenueSumsToTotal(t *testing.T) {
	now := time.Now()
	records := []models.CommerceRecord{
		rec("a", "completed", "Books", "ebook", 100, now),
		rec("b", "completed", "Courses", "course", 200, now),
		rec("c", "completed", "Books", "ebook", 300, now),
		rec("d", "completed", "Webinars", "webinar", 400, now),
	}

	snap := processors.NewStatsProcessor().Compute(records)
	var sum int64
	for _, g := range snap.ByCategory {
		sum += g.RevenueMinor
	}
	if sum != snap.TotalRevenueMinor {
		t.Errorf("category revenues sum to %d, total is %d", sum, snap.TotalRevenueMinor)
	}
}

func TestCompute_GroupsKeepFirstSeenOrder(t *testing.T) {
	now := time.Now()
	records := []models.CommerceRecord{
		rec("a", "completed", "Zeta", "", 100, now),
		rec("b", "completed", "Alpha", "", 200, now),
		rec("c", "completed", "Zeta", "", 300, now),
	}

	snap := processors.NewStatsProcessor().Compute(records)
	if len(snap.ByCategory) != 2 || snap.ByCategory[0].Key != "Zeta" || snap.ByCategory[1].Key != "Alpha" {
		t.Fatalf("groups must appear in first-seen order, got %v", snap.ByCategory)
	}
	if snap.ByCategory[0].Count != 2 || snap.ByCategory[0].RevenueMinor != 400 {
		t.Errorf("Zeta bucket = %+v", snap.ByCategory[0])
	}
}

func TestCompute_PercentagesSumToHundred(t *testing.T) {
	now := time.Now()
	records := []models.CommerceRecord{
		rec("a", "completed", "A", "", 137, now),
		rec("b", "completed", "B", "", 263, now),
		rec("c", "completed", "C", "", 601, now),
	}

	snap := processors.NewStatsProcessor().Compute(records)
	var total float64
	for _, g := range snap.ByCategory {
		total += snap.PercentageOfTotal(g.RevenueMinor)
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("percentages over an exhaustive partition sum to %f, want ~100", total)
	}
}

func TestTopRecords_RankingAndTieBreak(t *testing.T) {
	now := time.Now()
	records := []models.CommerceRecord{
		rec("r100", "completed", "c1", "", 100, now),
		rec("r200", "completed", "c2", "", 200, now),
		rec("r300", "completed", "c3", "", 300, now),
		rec("r400", "completed", "c4", "", 400, now),
		rec("r500", "completed", "c5", "", 500, now),
	}

	sp := processors.NewStatsProcessor()
	top := sp.TopRecords(records, 2)
	if len(top) != 2 || top[0].ID != "r500" || top[1].ID != "r400" {
		t.Fatalf("topN(2) = %v, want r500 then r400", ids(top))
	}

	// Ties break by insertion order: the first-seen record wins the
	// higher rank.
	tied := []models.CommerceRecord{
		rec("early", "completed", "", "", 500, now),
		rec("late", "completed", "", "", 500, now),
	}
	top = sp.TopRecords(tied, 2)
	if top[0].ID != "early" {
		t.Errorf("tie must rank first-seen record higher, got %s", top[0].ID)
	}
}

func TestTopGroups(t *testing.T) {
	groups := []models.GroupStat{
		{Key: "small", RevenueMinor: 100},
		{Key: "big", RevenueMinor: 900},
		{Key: "mid", RevenueMinor: 500},
	}

	top := processors.NewStatsProcessor().TopGroups(groups, 2)
	if len(top) != 2 || top[0].Key != "big" || top[1].Key != "mid" {
		t.Fatalf("TopGroups = %v", top)
	}
}

func TestCompute_MonthlyTrend(t *testing.T) {
	records := []models.CommerceRecord{
		rec("a", "completed", "", "", 100, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		rec("b", "completed", "", "", 200, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		rec("c", "completed", "", "", 300, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
	}

	snap := processors.NewStatsProcessor().Compute(records)
	if len(snap.MonthlyTrend) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(snap.MonthlyTrend))
	}
	// Ascending by month; same-month records collapse into one bucket.
	if snap.MonthlyTrend[0].Month != "2023-12" {
		t.Errorf("first bucket = %q, want \"2023-12\"", snap.MonthlyTrend[0].Month)
	}
	jan := snap.MonthlyTrend[1]
	if jan.Month != "2024-01" || jan.Count != 2 || jan.RevenueMinor != 300 {
		t.Errorf("2024-01 bucket = %+v, want count 2 revenue 300", jan)
	}
}

func ids(records []models.CommerceRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
