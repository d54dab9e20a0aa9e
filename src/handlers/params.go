package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/processors"
)

// URL slugs for the console's collection routes.
var kindSlugs = map[string]models.RecordKind{
	"orders":         models.KindServiceOrder,
	"product-orders": models.KindProductOrder,
	"payments":       models.KindPayment,
	"users":          models.KindUser,
	"webinars":       models.KindWebinar,
	"products":       models.KindProduct,
}

func kindFromPath(r *http.Request) (models.RecordKind, error) {
	slug := r.PathValue("kind")
	kind, ok := kindSlugs[slug]
	if !ok {
		return "", fmt.Errorf("unknown collection %q", slug)
	}
	return kind, nil
}

// filterSpecFromQuery builds a FilterSpec from the request's query string.
// Every key is optional; absence means the "all" sentinel.
func filterSpecFromQuery(r *http.Request) models.FilterSpec {
	q := r.URL.Query()
	spec := models.FilterSpec{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Category:   q.Get("category"),
		ItemType:   q.Get("itemType"),
		DatePreset: q.Get("dateRange"),
	}
	if v := q.Get("priceMin"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.PriceMin = &f
		}
	}
	if v := q.Get("priceMax"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.PriceMax = &f
		}
	}
	return spec
}

func sortFromQuery(r *http.Request) (processors.SortKey, processors.SortDirection) {
	q := r.URL.Query()
	key := processors.SortKey(q.Get("sortKey"))
	switch key {
	case processors.SortByDate, processors.SortByPrice, processors.SortByStatus:
	default:
		key = processors.SortByDate
	}
	dir := processors.SortDirection(q.Get("sortDir"))
	if dir != processors.SortAsc && dir != processors.SortDesc {
		dir = processors.SortDesc
	}
	return key, dir
}

func intQuery(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
