package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/settleadmin/backend/src/database"
	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/services"
	"github.com/username/settleadmin/backend/src/utils"
)

type BulkHandler struct {
	bulkService services.BulkService
}

func NewBulkHandler(bulkService services.BulkService) *BulkHandler {
	return &BulkHandler{bulkService: bulkService}
}

type bulkRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// HandleBulkTransition applies one target status to a selection of records.
// The response distinguishes success, partial success and failure; a
// partial success is never presented as a full one.
func (h *BulkHandler) HandleBulkTransition(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 || req.Status == "" {
		utils.SendJSONError(w, "ids and status are required", http.StatusBadRequest)
		return
	}

	report, err := h.bulkService.TransitionStatus(r.Context(), kind, req.IDs, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrKindNotMutable),
			errors.Is(err, services.ErrNoEligibleIDs):
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrUnknownKind):
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		default:
			utils.SendJSONError(w, fmt.Sprintf("Bulk transition failed: %v", err), http.StatusBadGateway)
		}
		return
	}

	// 200 for a clean batch, 207 when the operator needs to look closer.
	status := http.StatusOK
	if report.Outcome != models.BulkOutcomeSuccess {
		status = http.StatusMultiStatus
	}
	utils.SendJSON(w, report, status)
}

// HandleGetBulkHistory lists recently settled batches from the audit log.
func (h *BulkHandler) HandleGetBulkHistory(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 50)
	ops, err := database.ListRecentBulkOperations(limit)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error reading bulk history: %v", err), http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, ops, http.StatusOK)
}
