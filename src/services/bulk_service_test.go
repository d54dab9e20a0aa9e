package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"github.com/username/settleadmin/backend/src/config"
	"github.com/username/settleadmin/backend/src/database"
	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/processors"
	"github.com/username/settleadmin/backend/src/services"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	database.InitDB(":memory:")
	os.Exit(m.Run())
}

// fakeBackend is a scripted commerce API. failingIDs lists record ids whose
// status update reports success=false.
type fakeBackend struct {
	mu         sync.Mutex
	orders     []models.RawProductOrder
	failingIDs map[string]bool
	updated    []string
	fetchCount int
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/product-orders", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.fetchCount++
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": f.orders})
	})
	mux.HandleFunc("PUT /api/admin/product-orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failingIDs[id] {
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "record locked"})
			return
		}
		f.updated = append(f.updated, id)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	return mux
}

func productOrder(id, status string) models.RawProductOrder {
	return models.RawProductOrder{
		ID:         id,
		Product:    &models.RawProductRef{ID: "p1", Title: "Go Course", Type: "course", Category: "Courses"},
		ItemType:   "digital",
		PriceCents: 4999,
		Quantity:   1,
		Status:     status,
		CreatedAt:  "2024-03-01T10:00:00Z",
		User:       &models.RawOwner{ID: "u1", Name: "Jane Doe", Email: "jane@example.com"},
	}
}

// newBulkStack wires a bulk service over the fake backend with a fresh
// snapshot cache so tests never see each other's state.
func newBulkStack(t *testing.T, backend *fakeBackend) services.BulkService {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client := services.NewCommerceClient(&config.AppConfig{
		CommerceAPIBaseURL:   srv.URL,
		CommerceAPIToken:     "test-token",
		RequestTimeout:       5 * time.Second,
		APIRequestsPerSecond: 1000,
		APIRequestBurst:      1000,
	})
	viewService := services.NewViewService(client,
		processors.NewFilterProcessor(), processors.NewSortProcessor(),
		cache.New(time.Minute, time.Minute))
	return services.NewBulkService(client, viewService, &services.MockAlertService{}, 4)
}

func TestTransitionStatus_PartialFailure(t *testing.T) {
	backend := &fakeBackend{
		orders: []models.RawProductOrder{
			productOrder("a", "pending"),
			productOrder("b", "pending"),
			productOrder("c", "pending"),
		},
		failingIDs: map[string]bool{"b": true},
	}
	svc := newBulkStack(t, backend)

	report, err := svc.TransitionStatus(context.Background(), models.KindProductOrder,
		[]string{"a", "b", "c"}, "confirmed")
	require.NoError(t, err)

	require.Equal(t, 3, report.Requested)
	require.Equal(t, 2, report.Succeeded)
	require.Equal(t, 1, report.Failed)
	require.Equal(t, []string{"b"}, report.FailedIDs)
	require.Equal(t, models.BulkOutcomePartial, report.Outcome)
	require.NotEmpty(t, report.BatchID)
	require.False(t, report.SettledAt.IsZero())

	// Batch lands in the audit log once settled.
	ops, err := database.ListRecentBulkOperations(10)
	require.NoError(t, err)
	require.NotEmpty(t, ops)
	found := false
	for _, op := range ops {
		if op.BatchID == report.BatchID {
			found = true
			require.Equal(t, "partial", op.Outcome)
			require.Equal(t, 3, op.Requested)
		}
	}
	require.True(t, found, "settled batch %s missing from audit log", report.BatchID)
}

func TestTransitionStatus_AllSucceed(t *testing.T) {
	backend := &fakeBackend{
		orders: []models.RawProductOrder{
			productOrder("a", "pending"),
			productOrder("b", "confirmed"),
		},
	}
	svc := newBulkStack(t, backend)

	report, err := svc.TransitionStatus(context.Background(), models.KindProductOrder,
		[]string{"a", "b"}, "completed")
	require.NoError(t, err)
	require.Equal(t, models.BulkOutcomeSuccess, report.Outcome)
	require.Equal(t, 2, report.Succeeded)
	require.Zero(t, report.Failed)
	require.ElementsMatch(t, []string{"a", "b"}, backend.updated)
}

func TestTransitionStatus_TerminalRecordsScreenedOut(t *testing.T) {
	backend := &fakeBackend{
		orders: []models.RawProductOrder{
			productOrder("a", "pending"),
			productOrder("d", "refunded"),
		},
	}
	svc := newBulkStack(t, backend)

	report, err := svc.TransitionStatus(context.Background(), models.KindProductOrder,
		[]string{"a", "d"}, "confirmed")
	require.NoError(t, err)
	require.Equal(t, 1, report.Requested)
	require.Equal(t, []string{"d"}, report.IneligibleIDs)
	require.NotContains(t, backend.updated, "d", "no request may be sent for a terminal record")
}

func TestTransitionStatus_AllTerminal(t *testing.T) {
	backend := &fakeBackend{
		orders: []models.RawProductOrder{productOrder("d", "refunded")},
	}
	svc := newBulkStack(t, backend)

	_, err := svc.TransitionStatus(context.Background(), models.KindProductOrder,
		[]string{"d"}, "confirmed")
	require.Error(t, err)
	require.True(t, errors.Is(err, services.ErrNoEligibleIDs))
}

func TestTransitionStatus_UnknownIDPassesScreening(t *testing.T) {
	backend := &fakeBackend{
		orders: []models.RawProductOrder{productOrder("a", "pending")},
	}
	svc := newBulkStack(t, backend)

	// "ghost" is not in the snapshot; the backend stays authoritative and
	// the request is sent anyway.
	report, err := svc.TransitionStatus(context.Background(), models.KindProductOrder,
		[]string{"a", "ghost"}, "confirmed")
	require.NoError(t, err)
	require.Equal(t, 2, report.Requested)
	require.Contains(t, backend.updated, "ghost")
}

func TestTransitionStatus_InvalidStatus(t *testing.T) {
	svc := newBulkStack(t, &fakeBackend{})

	_, err := svc.TransitionStatus(context.Background(), models.KindProductOrder,
		[]string{"a"}, "succeeded")
	require.Error(t, err)
	require.True(t, errors.Is(err, services.ErrInvalidStatus),
		"payment vocabulary must not leak into order transitions")
}

func TestTransitionStatus_ImmutableKind(t *testing.T) {
	svc := newBulkStack(t, &fakeBackend{})

	_, err := svc.TransitionStatus(context.Background(), models.KindUser, []string{"u1"}, "active")
	require.Error(t, err)
	require.True(t, errors.Is(err, services.ErrKindNotMutable))
}

func TestCommerceClient_ErrorPaths(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "maintenance window"})
	})
	mux.HandleFunc("GET /api/admin/payments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("GET /api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := services.NewCommerceClient(&config.AppConfig{
		CommerceAPIBaseURL:   srv.URL,
		RequestTimeout:       5 * time.Second,
		APIRequestsPerSecond: 1000,
		APIRequestBurst:      1000,
	})

	_, err := client.FetchCollection(context.Background(), models.KindServiceOrder)
	require.Error(t, err, "success=false envelope must surface as an error")
	require.True(t, errors.Is(err, services.ErrFetchFailed))
	require.True(t, strings.Contains(err.Error(), "maintenance window"))

	_, err = client.FetchCollection(context.Background(), models.KindPayment)
	require.Error(t, err, "non-2xx must surface as an error")
	require.True(t, errors.Is(err, services.ErrFetchFailed))

	_, err = client.FetchCollection(context.Background(), models.KindUser)
	require.Error(t, err, "malformed envelope must surface as an error")
	require.True(t, errors.Is(err, services.ErrFetchFailed))
}
