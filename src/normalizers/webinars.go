package normalizers

import (
	"encoding/json"
	"fmt"

	"github.com/username/settleadmin/backend/src/models"
)

type webinarNormalizer struct{}

func newWebinarNormalizer() Normalizer {
	return &webinarNormalizer{}
}

func (n *webinarNormalizer) Kind() models.RecordKind {
	return models.KindWebinar
}

func (n *webinarNormalizer) Normalize(data json.RawMessage) ([]models.CommerceRecord, []Warning, error) {
	var raw []models.RawWebinar
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding webinar payload: %w", err)
	}

	records := make([]models.CommerceRecord, 0, len(raw))
	var warnings []Warning
	for i, wb := range raw {
		if wb.ID == "" {
			warnings = append(warnings, Warning{Index: i, Reason: "missing id"})
			continue
		}

		amount := wb.PriceCents
		if amount < 0 {
			warnings = append(warnings, Warning{Index: i, Reason: fmt.Sprintf("negative priceCents %d clamped to 0", amount)})
			amount = 0
		}

		owner := ownerRef(wb.Host)
		title := orTitle(wb.Title, "Webinar")
		records = append(records, models.CommerceRecord{
			ID:               wb.ID,
			Kind:             models.KindWebinar,
			Title:            title,
			Status:           wb.Status,
			AmountMinorUnits: amount,
			Quantity:         1,
			DisplayType:      resolveDisplayType("", "webinar", models.KindWebinar),
			Category:         orCategory(wb.Category),
			CreatedAt:        parseCreatedAt(wb.CreatedAt),
			Owner:            owner,
			SearchableText:   searchableText(title, owner.Name, owner.Email),
		})
	}
	return records, warnings, nil
}
