package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/utils"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Fixed CSV column schemas per record kind. Only scalar display fields are
// columns; free-text fields that may contain commas stay out by design.
var csvHeaders = map[models.RecordKind][]string{
	models.KindServiceOrder: {"Type", "Customer Name", "Email", "Item", "Category", "Unit Price", "Quantity", "Total", "Status", "Order Date"},
	models.KindProductOrder: {"Type", "Customer Name", "Email", "Item", "Category", "Unit Price", "Quantity", "Total", "Status", "Order Date"},
	models.KindPayment:      {"Transaction ID", "Customer Name", "Email", "Method", "Amount", "Status", "Payment Date"},
	models.KindUser:         {"Name", "Email", "Role", "Active", "Joined Date"},
	models.KindWebinar:      {"Title", "Host", "Category", "Price", "Status", "Created Date"},
	models.KindProduct:      {"Title", "Type", "Category", "Price", "Active", "Created Date"},
}

// exportRecord mirrors the CommerceRecord's externally relevant fields.
// Internal derived fields (searchableText) are omitted, and money appears
// as numeric major units computed at export time.
type exportRecord struct {
	ID           string            `json:"id"`
	Kind         models.RecordKind `json:"kind"`
	Title        string            `json:"title"`
	Status       string            `json:"status,omitempty"`
	Active       *bool             `json:"active,omitempty"`
	Amount       float64           `json:"amount"`
	Quantity     int               `json:"quantity"`
	Total        float64           `json:"total"`
	DisplayType  string            `json:"displayType"`
	Category     string            `json:"category"`
	CreatedAt    string            `json:"createdAt"`
	Owner        models.OwnerRef   `json:"owner"`
	ExternalTxID string            `json:"externalTxId,omitempty"`
}

type exportServiceImpl struct{}

func NewExportService() ExportService {
	return &exportServiceImpl{}
}

// Export serializes the supplied collection as-is: whether it was filtered
// first is entirely the caller's business.
func (s *exportServiceImpl) Export(records []models.CommerceRecord, kind models.RecordKind, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := s.exportCSV(records, kind)
		return data, "text/csv", err
	case FormatJSON:
		data, err := s.exportJSON(records)
		return data, "application/json", err
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (s *exportServiceImpl) exportCSV(records []models.CommerceRecord, kind models.RecordKind) ([]byte, error) {
	header, ok := csvHeaders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no CSV schema for kind %s", ErrExportFailed, kind)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	for _, r := range records {
		if err := w.Write(csvRow(r, kind)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func csvRow(r models.CommerceRecord, kind models.RecordKind) []string {
	date := exportDate(r.CreatedAt)
	switch kind {
	case models.KindServiceOrder, models.KindProductOrder:
		return []string{
			r.DisplayType, r.Owner.Name, r.Owner.Email, r.Title, r.Category,
			utils.FormatMajorUnits(r.AmountMinorUnits),
			fmt.Sprintf("%d", r.Quantity),
			utils.FormatMajorUnits(r.RevenueMinorUnits()),
			r.Status, date,
		}
	case models.KindPayment:
		return []string{
			r.ExternalTxID, r.Owner.Name, r.Owner.Email, r.DisplayType,
			utils.FormatMajorUnits(r.AmountMinorUnits), r.Status, date,
		}
	case models.KindUser:
		return []string{r.Title, r.Owner.Email, r.DisplayType, activeLabel(r.Active), date}
	case models.KindWebinar:
		return []string{
			r.Title, r.Owner.Name, r.Category,
			utils.FormatMajorUnits(r.AmountMinorUnits), r.Status, date,
		}
	default: // catalog products
		return []string{
			r.Title, r.DisplayType, r.Category,
			utils.FormatMajorUnits(r.AmountMinorUnits), activeLabel(r.Active), date,
		}
	}
}

func (s *exportServiceImpl) exportJSON(records []models.CommerceRecord) ([]byte, error) {
	out := make([]exportRecord, 0, len(records))
	for _, r := range records {
		er := exportRecord{
			ID:           r.ID,
			Kind:         r.Kind,
			Title:        r.Title,
			Status:       r.Status,
			Amount:       utils.MajorUnits(r.AmountMinorUnits),
			Quantity:     r.Quantity,
			Total:        utils.MajorUnits(r.RevenueMinorUnits()),
			DisplayType:  r.DisplayType,
			Category:     r.Category,
			CreatedAt:    exportDate(r.CreatedAt),
			Owner:        r.Owner,
			ExternalTxID: r.ExternalTxID,
		}
		if !r.Kind.Mutable() {
			active := r.Active
			er.Active = &active
		}
		out = append(out, er)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return data, nil
}

func exportDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(utils.ExportDateFormat)
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}
