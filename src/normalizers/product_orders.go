package normalizers

import (
	"encoding/json"
	"fmt"

	"github.com/username/settleadmin/backend/src/models"
)

// productOrderNormalizer handles orders wrapping a catalog product. Prices
// arrive as integer cents and pass through unchanged.
type productOrderNormalizer struct{}

func newProductOrderNormalizer() Normalizer {
	return &productOrderNormalizer{}
}

func (n *productOrderNormalizer) Kind() models.RecordKind {
	return models.KindProductOrder
}

func (n *productOrderNormalizer) Normalize(data json.RawMessage) ([]models.CommerceRecord, []Warning, error) {
	var raw []models.RawProductOrder
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding product order payload: %w", err)
	}

	records := make([]models.CommerceRecord, 0, len(raw))
	var warnings []Warning
	for i, o := range raw {
		if o.ID == "" {
			warnings = append(warnings, Warning{Index: i, Reason: "missing id"})
			continue
		}

		amount := o.PriceCents
		if amount < 0 {
			warnings = append(warnings, Warning{Index: i, Reason: fmt.Sprintf("negative priceCents %d clamped to 0", amount)})
			amount = 0
		}

		// A deleted product leaves the nested reference nil; the order
		// itself must survive with sentinel title and category.
		var nestedType, title, category string
		if o.Product != nil {
			nestedType = o.Product.Type
			title = o.Product.Title
			category = o.Product.Category
		}

		owner := ownerRef(o.User)
		title = orTitle(title, "Product")
		records = append(records, models.CommerceRecord{
			ID:               o.ID,
			Kind:             models.KindProductOrder,
			Title:            title,
			Status:           o.Status,
			AmountMinorUnits: amount,
			Quantity:         orQuantity(o.Quantity),
			DisplayType:      resolveDisplayType(nestedType, o.ItemType, models.KindProductOrder),
			Category:         orCategory(category),
			CreatedAt:        parseCreatedAt(o.CreatedAt),
			Owner:            owner,
			ExternalTxID:     o.TransactionID,
			SearchableText:   searchableText(title, owner.Name, owner.Email, o.TransactionID),
		})
	}
	return records, warnings, nil
}
