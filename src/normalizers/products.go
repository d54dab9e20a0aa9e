package normalizers

import (
	"encoding/json"
	"fmt"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/utils"
)

// catalogProductNormalizer handles the catalog endpoint, another legacy
// surface with display-string prices and an active flag instead of status.
type catalogProductNormalizer struct{}

func newCatalogProductNormalizer() Normalizer {
	return &catalogProductNormalizer{}
}

func (n *catalogProductNormalizer) Kind() models.RecordKind {
	return models.KindProduct
}

func (n *catalogProductNormalizer) Normalize(data json.RawMessage) ([]models.CommerceRecord, []Warning, error) {
	var raw []models.RawCatalogProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding catalog product payload: %w", err)
	}

	records := make([]models.CommerceRecord, 0, len(raw))
	var warnings []Warning
	for i, p := range raw {
		if p.ID == "" {
			warnings = append(warnings, Warning{Index: i, Reason: "missing id"})
			continue
		}

		amount, err := utils.ParseDisplayAmount(p.Price)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Reason: fmt.Sprintf("unparseable price: %v", err)})
			amount = 0
		}

		title := orTitle(p.Title, "Product")
		records = append(records, models.CommerceRecord{
			ID:               p.ID,
			Kind:             models.KindProduct,
			Title:            title,
			Active:           p.IsActive,
			AmountMinorUnits: amount,
			Quantity:         1,
			DisplayType:      resolveDisplayType(p.Type, "", models.KindProduct),
			Category:         orCategory(p.Category),
			CreatedAt:        parseCreatedAt(p.CreatedAt),
			SearchableText:   searchableText(title),
		})
	}
	return records, warnings, nil
}
