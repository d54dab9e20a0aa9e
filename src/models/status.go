package models

// Wire-level status vocabularies, case-sensitive, one per mutable kind.
// The console only checks membership; transition legality is the backend's
// responsibility.

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"

	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusSucceeded  = "succeeded"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"

	WebinarStatusUpcoming  = "upcoming"
	WebinarStatusCompleted = "completed"
	WebinarStatusCancelled = "cancelled"
)

var statusVocabulary = map[RecordKind][]string{
	KindServiceOrder: {OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded},
	KindProductOrder: {OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded},
	KindPayment:      {PaymentStatusPending, PaymentStatusProcessing, PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCancelled},
	KindWebinar:      {WebinarStatusUpcoming, WebinarStatusCompleted, WebinarStatusCancelled},
}

// terminalStatuses are states a bulk transition must not try to leave.
// Refunded orders and settled payments are backend-side operations; the
// coordinator screens such ids out instead of sending doomed requests.
var terminalStatuses = map[RecordKind]map[string]bool{
	KindServiceOrder: {OrderStatusRefunded: true},
	KindProductOrder: {OrderStatusRefunded: true},
	KindPayment:      {PaymentStatusSucceeded: true},
}

// Mutable reports whether records of this kind carry a status that the
// console can change. User accounts and catalog products use the Active
// flag and are managed through their own CRUD endpoints, not bulk ops.
func (k RecordKind) Mutable() bool {
	_, ok := statusVocabulary[k]
	return ok
}

// StatusAllowed reports whether status is part of kind's wire vocabulary.
func StatusAllowed(kind RecordKind, status string) bool {
	for _, s := range statusVocabulary[kind] {
		if s == status {
			return true
		}
	}
	return false
}

// StatusTerminal reports whether a record in this status is ineligible for
// bulk transitions.
func StatusTerminal(kind RecordKind, status string) bool {
	return terminalStatuses[kind][status]
}
