package processors

import (
	"time"

	"github.com/username/settleadmin/backend/src/models"
)

// Sort keys and directions accepted by the sort processor.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByPrice  SortKey = "price"
	SortByStatus SortKey = "status"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterProcessor evaluates a filter specification against a collection.
// Pure and order-preserving: identical inputs always yield the identical
// subsequence. The caller passes now explicitly so rolling date windows
// are testable.
type FilterProcessor interface {
	Filter(records []models.CommerceRecord, spec models.FilterSpec, now time.Time) []models.CommerceRecord
}

// SortProcessor orders a collection by key and direction. Sorting is
// stable; desc is defined as the reverse of the asc ordering.
type SortProcessor interface {
	Sort(records []models.CommerceRecord, key SortKey, dir SortDirection) []models.CommerceRecord
}

// StatsProcessor computes scalar statistics, grouped rollups and rankings
// over a (typically pre-filtered) collection. All methods are pure; no
// state is retained between calls.
type StatsProcessor interface {
	Compute(records []models.CommerceRecord) models.StatisticsSnapshot
	TopRecords(records []models.CommerceRecord, n int) []models.CommerceRecord
	TopGroups(groups []models.GroupStat, n int) []models.GroupStat
}
