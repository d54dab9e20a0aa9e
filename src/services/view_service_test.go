package services_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"github.com/username/settleadmin/backend/src/config"
	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/processors"
	"github.com/username/settleadmin/backend/src/services"
)

func newViewStack(t *testing.T, backend *fakeBackend) (services.ViewService, *fakeBackend) {
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
	svc := services.NewViewService(client,
		processors.NewFilterProcessor(), processors.NewSortProcessor(),
		cache.New(time.Minute, time.Minute))
	return svc, backend
}

func TestSnapshot_CacheAndInvalidate(t *testing.T) {
	svc, backend := newViewStack(t, &fakeBackend{
		orders: []models.RawProductOrder{productOrder("a", "pending")},
	})
	ctx := context.Background()

	records, err := svc.Snapshot(ctx, models.KindProductOrder)
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, err = svc.Snapshot(ctx, models.KindProductOrder)
	require.NoError(t, err)
	backend.mu.Lock()
	fetches := backend.fetchCount
	backend.mu.Unlock()
	require.Equal(t, 1, fetches, "second read must come from cache")

	svc.Invalidate(models.KindProductOrder)
	_, err = svc.Snapshot(ctx, models.KindProductOrder)
	require.NoError(t, err)
	backend.mu.Lock()
	fetches = backend.fetchCount
	backend.mu.Unlock()
	require.Equal(t, 2, fetches, "invalidation must force a re-fetch")
}

func TestView_Pagination(t *testing.T) {
	orders := make([]models.RawProductOrder, 0, 7)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		orders = append(orders, productOrder(id, "pending"))
	}
	svc, _ := newViewStack(t, &fakeBackend{orders: orders})
	ctx := context.Background()
	now := time.Now()

	result, err := svc.View(ctx, models.KindProductOrder, models.FilterSpec{},
		processors.SortByDate, processors.SortAsc, 1, 3, now)
	require.NoError(t, err)
	require.Equal(t, 7, result.TotalCount)
	require.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Records, 3)

	// The last page holds the remainder.
	result, err = svc.View(ctx, models.KindProductOrder, models.FilterSpec{},
		processors.SortByDate, processors.SortAsc, 3, 3, now)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	// Out-of-range pages clamp instead of erroring.
	result, err = svc.View(ctx, models.KindProductOrder, models.FilterSpec{},
		processors.SortByDate, processors.SortAsc, 99, 3, now)
	require.NoError(t, err)
	require.Equal(t, 3, result.Page)
	require.Len(t, result.Records, 1)

	// Nonsense perPage falls back to the default.
	result, err = svc.View(ctx, models.KindProductOrder, models.FilterSpec{},
		processors.SortByDate, processors.SortAsc, 1, -5, now)
	require.NoError(t, err)
	require.Equal(t, services.DefaultPerPage, result.PerPage)
}

func TestView_EmptyCollection(t *testing.T) {
	svc, _ := newViewStack(t, &fakeBackend{orders: []models.RawProductOrder{}})

	result, err := svc.View(context.Background(), models.KindProductOrder, models.FilterSpec{},
		processors.SortByDate, processors.SortDesc, 1, 25, time.Now())
	require.NoError(t, err)
	require.Zero(t, result.TotalCount)
	require.Equal(t, 1, result.TotalPages)
	require.Empty(t, result.Records)
}
