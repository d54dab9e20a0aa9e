package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/processors"
	"github.com/username/settleadmin/backend/src/services"
	"github.com/username/settleadmin/backend/src/utils"
)

const dashboardTopN = 5

type StatsHandler struct {
	viewService    services.ViewService
	statsProcessor processors.StatsProcessor
}

func NewStatsHandler(viewService services.ViewService, statsProcessor processors.StatsProcessor) *StatsHandler {
	return &StatsHandler{
		viewService:    viewService,
		statsProcessor: statsProcessor,
	}
}

// Dashboard-shaped statistics. Minor units are converted to major-unit
// floats here, at the response boundary, and nowhere earlier.
type groupStatView struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type monthStatView struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type topRecordView struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Revenue float64 `json:"revenue"`
}

type statsResponse struct {
	Kind           models.RecordKind `json:"kind"`
	TotalCount     int               `json:"totalCount"`
	TotalRevenue   float64           `json:"totalRevenue"`
	AverageValue   float64           `json:"averageValue"`
	CountsByStatus map[string]int    `json:"countsByStatus"`
	ByCategory     []groupStatView   `json:"byCategory"`
	ByDisplayType  []groupStatView   `json:"byDisplayType"`
	MonthlyTrend   []monthStatView   `json:"monthlyTrend"`
	TopRecords     []topRecordView   `json:"topRecords"`
}

func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	filtered, err := h.viewService.Filtered(r.Context(), kind, filterSpecFromQuery(r), time.Now())
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error computing statistics for %s: %v", kind, err), http.StatusBadGateway)
		return
	}

	snap := h.statsProcessor.Compute(filtered)
	resp := statsResponse{
		Kind:           kind,
		TotalCount:     snap.TotalCount,
		TotalRevenue:   snap.TotalRevenue(),
		AverageValue:   snap.AverageValue(),
		CountsByStatus: snap.CountsByStatus,
		ByCategory:     groupViews(snap, snap.ByCategory),
		ByDisplayType:  groupViews(snap, snap.ByDisplayType),
		MonthlyTrend:   monthViews(snap.MonthlyTrend),
		TopRecords:     topViews(h.statsProcessor.TopRecords(filtered, dashboardTopN)),
	}

	etag, err := utils.GenerateETag(resp)
	if err == nil {
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	utils.SendJSON(w, resp, http.StatusOK)
}

func groupViews(snap models.StatisticsSnapshot, groups []models.GroupStat) []groupStatView {
	out := make([]groupStatView, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupStatView{
			Key:        g.Key,
			Count:      g.Count,
			Revenue:    utils.MajorUnits(g.RevenueMinor),
			Percentage: snap.PercentageOfTotal(g.RevenueMinor),
		})
	}
	return out
}

func monthViews(months []models.MonthStat) []monthStatView {
	out := make([]monthStatView, 0, len(months))
	for _, m := range months {
		out = append(out, monthStatView{Month: m.Month, Count: m.Count, Revenue: utils.MajorUnits(m.RevenueMinor)})
	}
	return out
}

func topViews(records []models.CommerceRecord) []topRecordView {
	out := make([]topRecordView, 0, len(records))
	for _, r := range records {
		out = append(out, topRecordView{ID: r.ID, Title: r.Title, Revenue: utils.MajorUnits(r.RevenueMinorUnits())})
	}
	return out
}
