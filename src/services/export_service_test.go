package services_test

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/services"
)

func orderRecord() models.CommerceRecord {
	return models.CommerceRecord{
		ID:               "ord_1",
		Kind:             models.KindServiceOrder,
		Title:            "Tax Filing",
		Status:           "completed",
		AmountMinorUnits: 1999,
		Quantity:         2,
		DisplayType:      "service",
		Category:         "Tax Services",
		CreatedAt:        time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Owner:            models.OwnerRef{ID: "u1", Name: "Jane Doe", Email: "jane@example.com"},
	}
}

func TestExport_CSVOrderSchema(t *testing.T) {
	svc := services.NewExportService()

	data, contentType, err := svc.Export([]models.CommerceRecord{orderRecord()}, models.KindServiceOrder, services.FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", contentType)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t,
		[]string{"Type", "Customer Name", "Email", "Item", "Category", "Unit Price", "Quantity", "Total", "Status", "Order Date"},
		rows[0])
	require.Equal(t,
		[]string{"service", "Jane Doe", "jane@example.com", "Tax Filing", "Tax Services", "19.99", "2", "39.98", "completed", "01/15/2024"},
		rows[1])
}

func TestExport_CSVEmptyCollection(t *testing.T) {
	svc := services.NewExportService()

	data, _, err := svc.Export(nil, models.KindPayment, services.FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "empty collection exports the header row only")
}

func TestExport_CSVFieldWithComma(t *testing.T) {
	rec := orderRecord()
	rec.Title = "Filing, Expedited"

	svc := services.NewExportService()
	data, _, err := svc.Export([]models.CommerceRecord{rec}, models.KindServiceOrder, services.FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "Filing, Expedited", rows[1][3])
}

func TestExport_JSON(t *testing.T) {
	svc := services.NewExportService()

	data, contentType, err := svc.Export([]models.CommerceRecord{orderRecord()}, models.KindServiceOrder, services.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "application/json", contentType)
	require.True(t, strings.HasPrefix(string(data), "[\n"), "JSON export is pretty-printed")

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 1)
	require.Equal(t, 19.99, out[0]["amount"])
	require.Equal(t, 39.98, out[0]["total"])
	require.Equal(t, "01/15/2024", out[0]["createdAt"])
	require.NotContains(t, out[0], "searchableText")
	require.NotContains(t, out[0], "active", "mutable kinds carry status, not an active flag")
}

func TestExport_JSONEmptyCollection(t *testing.T) {
	svc := services.NewExportService()

	data, _, err := svc.Export(nil, models.KindUser, services.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestExport_JSONUserCarriesActiveFlag(t *testing.T) {
	rec := models.CommerceRecord{
		ID:     "usr_1",
		Kind:   models.KindUser,
		Title:  "Jane Doe",
		Active: true,
		Owner:  models.OwnerRef{Email: "jane@example.com"},
	}

	svc := services.NewExportService()
	data, _, err := svc.Export([]models.CommerceRecord{rec}, models.KindUser, services.FormatJSON)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, true, out[0]["active"])
}

func TestExport_UnknownFormat(t *testing.T) {
	svc := services.NewExportService()

	_, _, err := svc.Export(nil, models.KindServiceOrder, "xml")
	require.Error(t, err)
	require.True(t, errors.Is(err, services.ErrUnknownFormat))
}
