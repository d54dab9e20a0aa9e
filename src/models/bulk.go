package models

import "time"

// Bulk outcome tri-state. A partial success must never be presented the
// same way as a full success.
const (
	BulkOutcomeSuccess = "success"
	BulkOutcomePartial = "partial"
	BulkOutcomeFailure = "failure"
)

// BulkReport is the reduction of one settled bulk status batch.
type BulkReport struct {
	BatchID      string     `json:"batchId"`
	Kind         RecordKind `json:"kind"`
	TargetStatus string     `json:"targetStatus"`

	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// IneligibleIDs were screened out before any request was sent
	// (already in a terminal status). They are not counted in Requested.
	IneligibleIDs []string `json:"ineligibleIds,omitempty"`
	FailedIDs     []string `json:"failedIds,omitempty"`

	Outcome   string    `json:"outcome"`
	SettledAt time.Time `json:"settledAt"`
}

// ResolveOutcome derives the tri-state outcome from the counts.
func (r *BulkReport) ResolveOutcome() {
	switch {
	case r.Succeeded == r.Requested:
		r.Outcome = BulkOutcomeSuccess
	case r.Succeeded > 0:
		r.Outcome = BulkOutcomePartial
	default:
		r.Outcome = BulkOutcomeFailure
	}
}
