package processors

import (
	"strings"
	"time"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/utils"
)

const (
	rollingWeek  = 7 * 24 * time.Hour
	rollingMonth = 30 * 24 * time.Hour
)

type filterProcessorImpl struct{}

// NewFilterProcessor creates a new instance of FilterProcessor.
func NewFilterProcessor() FilterProcessor {
	return &filterProcessorImpl{}
}

// Filter returns the subsequence of records satisfying every supplied
// criterion. Predicates are pure and commutative; evaluation short-circuits
// on the first failing one.
func (p *filterProcessorImpl) Filter(records []models.CommerceRecord, spec models.FilterSpec, now time.Time) []models.CommerceRecord {
	if spec.IsEmpty() {
		out := make([]models.CommerceRecord, len(records))
		copy(out, records)
		return out
	}

	out := make([]models.CommerceRecord, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, spec.Search) &&
			matchesStatus(r, spec.Status) &&
			matchesCategory(r, spec.Category) &&
			matchesItemType(r, spec.ItemType) &&
			matchesDatePreset(r, spec.DatePreset, now) &&
			matchesPriceRange(r, spec.PriceMin, spec.PriceMax) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r models.CommerceRecord, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(r.SearchableText, strings.ToLower(query))
}

func matchesStatus(r models.CommerceRecord, want string) bool {
	if want == "" || want == models.FilterAll {
		return true
	}
	// Users and catalog products have no status enum; "active" and
	// "inactive" filter on their boolean flag.
	if !r.Kind.Mutable() {
		switch want {
		case "active":
			return r.Active
		case "inactive":
			return !r.Active
		}
		return false
	}
	return r.Status == want
}

func matchesCategory(r models.CommerceRecord, want string) bool {
	if want == "" || want == models.FilterAll {
		return true
	}
	return strings.EqualFold(r.Category, want)
}

func matchesItemType(r models.CommerceRecord, want string) bool {
	if want == "" || want == models.FilterAll {
		return true
	}
	return strings.EqualFold(r.DisplayType, want)
}

func matchesDatePreset(r models.CommerceRecord, preset string, now time.Time) bool {
	switch preset {
	case "", models.DatePresetAll:
		return true
	case models.DatePresetToday:
		return utils.SameCalendarDay(now, r.CreatedAt)
	case models.DatePresetWeek:
		return utils.WithinRollingWindow(r.CreatedAt, now, rollingWeek)
	case models.DatePresetMonth:
		return utils.WithinRollingWindow(r.CreatedAt, now, rollingMonth)
	default:
		// Unknown presets pass everything rather than silently hiding data.
		return true
	}
}

func matchesPriceRange(r models.CommerceRecord, min, max *float64) bool {
	price := r.AmountMajorUnits()
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}
