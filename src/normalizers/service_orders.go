package normalizers

import (
	"encoding/json"
	"fmt"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/utils"
)

// serviceOrderNormalizer handles the legacy service-order endpoint, which
// still reports prices as display strings.
type serviceOrderNormalizer struct{}

func newServiceOrderNormalizer() Normalizer {
	return &serviceOrderNormalizer{}
}

func (n *serviceOrderNormalizer) Kind() models.RecordKind {
	return models.KindServiceOrder
}

func (n *serviceOrderNormalizer) Normalize(data json.RawMessage) ([]models.CommerceRecord, []Warning, error) {
	var raw []models.RawServiceOrder
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding service order payload: %w", err)
	}

	records := make([]models.CommerceRecord, 0, len(raw))
	var warnings []Warning
	for i, o := range raw {
		if o.ID == "" {
			warnings = append(warnings, Warning{Index: i, Reason: "missing id"})
			continue
		}

		amount, err := utils.ParseDisplayAmount(o.Price)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Reason: fmt.Sprintf("unparseable price: %v", err)})
			amount = 0
		}

		owner := ownerRef(o.User)
		title := orTitle(o.ServiceName, "Service")
		records = append(records, models.CommerceRecord{
			ID:               o.ID,
			Kind:             models.KindServiceOrder,
			Title:            title,
			Status:           o.Status,
			AmountMinorUnits: amount,
			Quantity:         orQuantity(o.Quantity),
			DisplayType:      resolveDisplayType("", "service", models.KindServiceOrder),
			Category:         orCategory(o.Category),
			CreatedAt:        parseCreatedAt(o.CreatedAt),
			Owner:            owner,
			ExternalTxID:     o.TransactionID,
			SearchableText:   searchableText(title, owner.Name, owner.Email, o.TransactionID),
		})
	}
	return records, warnings, nil
}
