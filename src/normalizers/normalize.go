package normalizers

import (
	"strings"
	"time"

	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
)

const (
	unknownTitlePrefix  = "Unknown"
	defaultCategory     = "Uncategorized"
	createdAtFormatDate = "2006-01-02"
)

// resolveDisplayType picks the derived type label: explicit nested-product
// type first, then the item-level type field, then the raw kind tag. The
// nested-product override is what makes an order for an ebook show up as
// "ebook" instead of a generic item type.
func resolveDisplayType(nestedType, itemType string, kind models.RecordKind) string {
	if nestedType != "" {
		return nestedType
	}
	if itemType != "" {
		return itemType
	}
	return string(kind)
}

// orTitle substitutes the "Unknown <Kind>" sentinel when a title is missing
// (typically a deleted nested reference), so downstream filtering and
// sorting never trip over absent data.
func orTitle(title, kindLabel string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return unknownTitlePrefix + " " + kindLabel
}

func orCategory(category string) string {
	if strings.TrimSpace(category) != "" {
		return category
	}
	return defaultCategory
}

func orQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// parseCreatedAt accepts the RFC3339 timestamps the backend normally sends
// and the bare-date form some legacy rows still carry. An unparseable
// value yields the zero time; the record is kept.
func parseCreatedAt(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(createdAtFormatDate, s); err == nil {
		return t
	}
	if s != "" && logger.L != nil {
		logger.L.Debug("Unparseable createdAt, using zero time", "value", s)
	}
	return time.Time{}
}

// searchableText precomputes the lowercase haystack for free-text search.
// Derived once at normalization time, never re-derived per filter pass.
func searchableText(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}

func ownerRef(o *models.RawOwner) models.OwnerRef {
	if o == nil {
		return models.OwnerRef{}
	}
	return models.OwnerRef{ID: o.ID, Name: o.Name, Email: o.Email}
}
