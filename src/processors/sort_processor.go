package processors

import (
	"sort"

	"github.com/username/settleadmin/backend/src/models"
)

type sortProcessorImpl struct{}

// NewSortProcessor creates a new instance of SortProcessor.
func NewSortProcessor() SortProcessor {
	return &sortProcessorImpl{}
}

// Sort returns a new slice ordered by the given key. The input is never
// mutated. The sort is stable, so records comparing equal on the key keep
// their relative input order; repeated re-sorts of an already-sorted list
// do not reshuffle same-key entries. Descending order is the exact reverse
// of ascending, which guarantees sort(asc) == reverse(sort(desc)).
func (p *sortProcessorImpl) Sort(records []models.CommerceRecord, key SortKey, dir SortDirection) []models.CommerceRecord {
	out := make([]models.CommerceRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		return lessByKey(out[i], out[j], key)
	})

	if dir == SortDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func lessByKey(a, b models.CommerceRecord, key SortKey) bool {
	switch key {
	case SortByPrice:
		// Minor units, never the rounded display value; display rounding
		// would misorder records near cent boundaries.
		return a.AmountMinorUnits < b.AmountMinorUnits
	case SortByStatus:
		return a.Status < b.Status
	case SortByDate:
		fallthrough
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
