package models

import "time"

// RecordKind tags which backend collection a CommerceRecord came from.
// The normalizer for a kind is chosen by the caller; kinds are never
// sniffed from payload content.
type RecordKind string

const (
	KindServiceOrder RecordKind = "service_order"
	KindProductOrder RecordKind = "product_order"
	KindPayment      RecordKind = "payment"
	KindUser         RecordKind = "user"
	KindWebinar      RecordKind = "webinar"
	KindProduct      RecordKind = "product"
)

// AllKinds lists every collection the console fetches, in dashboard order.
var AllKinds = []RecordKind{
	KindServiceOrder,
	KindProductOrder,
	KindPayment,
	KindUser,
	KindWebinar,
	KindProduct,
}

func (k RecordKind) Valid() bool {
	switch k {
	case KindServiceOrder, KindProductOrder, KindPayment, KindUser, KindWebinar, KindProduct:
		return true
	}
	return false
}

// OwnerRef is a weak reference to the user a record belongs to. It carries
// denormalized display fields only and never owns the user entity.
type OwnerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommerceRecord is the unified, normalized representation of a backend
// record. Each normalizer populates as many of these fields as its source
// payload allows. Records are immutable once normalized; a mutation always
// results in a full re-fetch and re-normalization.
type CommerceRecord struct {
	ID   string     `json:"id"`
	Kind RecordKind `json:"kind"`

	Title string `json:"title"`

	// Status holds the variant-specific state for mutable records
	// (orders, payments, webinars). Catalog products and user accounts
	// carry the Active flag instead and leave Status empty.
	Status string `json:"status,omitempty"`
	Active bool   `json:"active"`

	// AmountMinorUnits is the unit price in cents. Converted exactly once
	// at normalization time, whichever representation the payload used.
	AmountMinorUnits int64 `json:"amountMinorUnits"`
	Quantity         int   `json:"quantity"`

	// DisplayType is resolved from the nested product's own type when one
	// is present, falling back to the item-level type and finally the raw
	// kind tag. The nested-product override is load-bearing: an order for
	// an ebook must surface as "ebook", not as a generic order item.
	DisplayType string `json:"displayType"`
	Category    string `json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	Owner     OwnerRef  `json:"owner"`

	// ExternalTxID is the payment processor's transaction reference,
	// where the source payload has one.
	ExternalTxID string `json:"externalTxId,omitempty"`

	// SearchableText is the precomputed lowercase haystack for free-text
	// search: title, owner name, owner email and external transaction id.
	// Internal only; never exported.
	SearchableText string `json:"-"`
}

// RevenueMinorUnits is the record's contribution to revenue totals:
// unit price times quantity, in cents.
func (r CommerceRecord) RevenueMinorUnits() int64 {
	return r.AmountMinorUnits * int64(r.Quantity)
}

// AmountMajorUnits converts the unit price to major currency units for
// display. Aggregation must never use this; it sums minor units.
func (r CommerceRecord) AmountMajorUnits() float64 {
	return float64(r.AmountMinorUnits) / 100
}
