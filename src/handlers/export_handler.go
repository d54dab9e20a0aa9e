package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/username/settleadmin/backend/src/processors"
	"github.com/username/settleadmin/backend/src/services"
	"github.com/username/settleadmin/backend/src/utils"
)

type ExportHandler struct {
	viewService   services.ViewService
	sortProcessor processors.SortProcessor
	exportService services.ExportService
}

func NewExportHandler(viewService services.ViewService, sortProcessor processors.SortProcessor, exportService services.ExportService) *ExportHandler {
	return &ExportHandler{
		viewService:   viewService,
		sortProcessor: sortProcessor,
		exportService: exportService,
	}
}

// HandleExport streams the current (optionally filtered) collection as a
// CSV or JSON download. The exporter itself does no filtering; whatever
// the query selected is what goes out.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = services.FormatCSV
	}

	records, err := h.viewService.Filtered(r.Context(), kind, filterSpecFromQuery(r), time.Now())
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error fetching %s for export: %v", kind, err), http.StatusBadGateway)
		return
	}
	key, dir := sortFromQuery(r)
	records = h.sortProcessor.Sort(records, key, dir)

	payload, contentType, err := h.exportService.Export(records, kind, format)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFormat) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.SendJSONError(w, fmt.Sprintf("Export failed: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s-export-%s.%s", r.PathValue("kind"), time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
