package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/username/settleadmin/backend/src/services"
	"github.com/username/settleadmin/backend/src/utils"
)

type ViewHandler struct {
	viewService services.ViewService
}

func NewViewHandler(viewService services.ViewService) *ViewHandler {
	return &ViewHandler{viewService: viewService}
}

// HandleGetView serves one filtered, sorted, paged slice of a collection.
func (h *ViewHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	spec := filterSpecFromQuery(r)
	key, dir := sortFromQuery(r)
	page := intQuery(r, "page", 1)
	perPage := intQuery(r, "perPage", services.DefaultPerPage)

	result, err := h.viewService.View(r.Context(), kind, spec, key, dir, page, perPage, time.Now())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, services.ErrUnknownKind) {
			status = http.StatusNotFound
		}
		utils.SendJSONError(w, fmt.Sprintf("Error building view for %s: %v", kind, err), status)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}

// HandleRefresh forces a re-fetch of one collection.
func (h *ViewHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	records, err := h.viewService.Refresh(r.Context(), kind)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error refreshing %s: %v", kind, err), http.StatusBadGateway)
		return
	}
	utils.SendJSON(w, map[string]interface{}{"kind": kind, "records": len(records)}, http.StatusOK)
}
