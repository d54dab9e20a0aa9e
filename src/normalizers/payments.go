package normalizers

import (
	"encoding/json"
	"fmt"

	"github.com/username/settleadmin/backend/src/models"
)

type paymentNormalizer struct{}

func newPaymentNormalizer() Normalizer {
	return &paymentNormalizer{}
}

func (n *paymentNormalizer) Kind() models.RecordKind {
	return models.KindPayment
}

func (n *paymentNormalizer) Normalize(data json.RawMessage) ([]models.CommerceRecord, []Warning, error) {
	var raw []models.RawPayment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding payment payload: %w", err)
	}

	records := make([]models.CommerceRecord, 0, len(raw))
	var warnings []Warning
	for i, p := range raw {
		if p.ID == "" {
			warnings = append(warnings, Warning{Index: i, Reason: "missing id"})
			continue
		}

		amount := p.AmountCents
		if amount < 0 {
			warnings = append(warnings, Warning{Index: i, Reason: fmt.Sprintf("negative amountCents %d clamped to 0", amount)})
			amount = 0
		}

		owner := ownerRef(p.User)
		title := orTitle(p.Description, "Payment")
		records = append(records, models.CommerceRecord{
			ID:               p.ID,
			Kind:             models.KindPayment,
			Title:            title,
			Status:           p.Status,
			AmountMinorUnits: amount,
			Quantity:         1,
			// Payment screens break down by method, so the method acts
			// as the item-level type.
			DisplayType:    resolveDisplayType("", p.Method, models.KindPayment),
			Category:       orCategory(p.Method),
			CreatedAt:      parseCreatedAt(p.CreatedAt),
			Owner:          owner,
			ExternalTxID:   p.TransactionID,
			SearchableText: searchableText(title, owner.Name, owner.Email, p.TransactionID),
		})
	}
	return records, warnings, nil
}
