package models

// Filter sentinel: every criterion left empty or set to "all" is always
// satisfied. All supplied criteria combine with AND semantics.
const FilterAll = "all"

// Date-range presets. Rolling windows relative to the moment of filtering,
// not calendar-aligned periods.
const (
	DatePresetAll   = "all"
	DatePresetToday = "today"
	DatePresetWeek  = "week"
	DatePresetMonth = "month"
)

// FilterSpec is the named-criteria mapping a UI or CLI caller supplies.
// Price bounds are inclusive, in major units; a nil bound imposes no
// constraint.
type FilterSpec struct {
	Search     string   `json:"search,omitempty"`
	Status     string   `json:"status,omitempty"`
	Category   string   `json:"category,omitempty"`
	ItemType   string   `json:"itemType,omitempty"`
	DatePreset string   `json:"dateRange,omitempty"`
	PriceMin   *float64 `json:"priceMin,omitempty"`
	PriceMax   *float64 `json:"priceMax,omitempty"`
}

func unset(v string) bool {
	return v == "" || v == FilterAll
}

// IsEmpty reports whether every criterion is at its sentinel, i.e. the
// filter passes everything through.
func (s FilterSpec) IsEmpty() bool {
	return unset(s.Search) && unset(s.Status) && unset(s.Category) &&
		unset(s.ItemType) && (unset(s.DatePreset) || s.DatePreset == DatePresetAll) &&
		s.PriceMin == nil && s.PriceMax == nil
}
