package normalizers

import (
	"encoding/json"
	"fmt"

	"github.com/username/settleadmin/backend/src/models"
)

// userNormalizer maps account records. Users carry no status enum; the
// boolean active flag stands in, and the amount is always zero.
type userNormalizer struct{}

func newUserNormalizer() Normalizer {
	return &userNormalizer{}
}

func (n *userNormalizer) Kind() models.RecordKind {
	return models.KindUser
}

func (n *userNormalizer) Normalize(data json.RawMessage) ([]models.CommerceRecord, []Warning, error) {
	var raw []models.RawUser
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decoding user payload: %w", err)
	}

	records := make([]models.CommerceRecord, 0, len(raw))
	var warnings []Warning
	for i, u := range raw {
		if u.ID == "" {
			warnings = append(warnings, Warning{Index: i, Reason: "missing id"})
			continue
		}

		title := orTitle(u.Name, "User")
		records = append(records, models.CommerceRecord{
			ID:             u.ID,
			Kind:           models.KindUser,
			Title:          title,
			Active:         u.IsActive,
			Quantity:       1,
			DisplayType:    resolveDisplayType("", u.Role, models.KindUser),
			Category:       orCategory(""),
			CreatedAt:      parseCreatedAt(u.CreatedAt),
			Owner:          models.OwnerRef{ID: u.ID, Name: u.Name, Email: u.Email},
			SearchableText: searchableText(title, u.Name, u.Email),
		})
	}
	return records, warnings, nil
}
