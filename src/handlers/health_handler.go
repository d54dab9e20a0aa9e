package handlers

import (
	"net/http"
	"time"

	"github.com/username/settleadmin/backend/src/services"
	"github.com/username/settleadmin/backend/src/utils"
)

type HealthHandler struct {
	client services.CommerceClient
}

func NewHealthHandler(client services.CommerceClient) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	upstream := "ok"
	if err := h.client.Ping(r.Context()); err != nil {
		upstream = err.Error()
	}
	utils.SendJSON(w, map[string]string{
		"status":   "ok",
		"upstream": upstream,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
