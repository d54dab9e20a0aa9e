package services

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/normalizers"
	"github.com/username/settleadmin/backend/src/processors"
)

const (
	ckSnapshot = "snapshot_records_%s"

	DefaultSnapshotExpiration = 15 * time.Minute
	SnapshotCleanupInterval   = 30 * time.Minute

	DefaultPerPage = 25
	MaxPerPage     = 200
)

type viewServiceImpl struct {
	client          CommerceClient
	filterProcessor processors.FilterProcessor
	sortProcessor   processors.SortProcessor
	snapshotCache   *cache.Cache
}

func NewViewService(
	client CommerceClient,
	filterProcessor processors.FilterProcessor,
	sortProcessor processors.SortProcessor,
	snapshotCache *cache.Cache,
) ViewService {
	return &viewServiceImpl{
		client:          client,
		filterProcessor: filterProcessor,
		sortProcessor:   sortProcessor,
		snapshotCache:   snapshotCache,
	}
}

func (s *viewServiceImpl) Snapshot(ctx context.Context, kind models.RecordKind) ([]models.CommerceRecord, error) {
	cacheKey := fmt.Sprintf(ckSnapshot, kind)
	if cached, found := s.snapshotCache.Get(cacheKey); found {
		logger.L.Debug("Snapshot cache hit", "kind", kind)
		return cached.([]models.CommerceRecord), nil
	}
	return s.Refresh(ctx, kind)
}

// Refresh runs one full fetch→normalize cycle and replaces the kind's
// snapshot wholesale. On a failed fetch the previous snapshot is left
// untouched and the error is surfaced; no partial data is ever merged.
func (s *viewServiceImpl) Refresh(ctx context.Context, kind models.RecordKind) ([]models.CommerceRecord, error) {
	startTime := time.Now()

	normalizer, err := normalizers.ForKind(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, err)
	}

	data, err := s.client.FetchCollection(ctx, kind)
	if err != nil {
		logger.L.Error("Fetch failed, keeping previous snapshot", "kind", kind, "error", err)
		return nil, err
	}

	records, warnings, err := normalizer.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNormalizationFailed, err)
	}
	for _, w := range warnings {
		logger.L.Warn("Record skipped or degraded during normalization",
			"kind", kind, "index", w.Index, "reason", w.Reason)
	}

	s.snapshotCache.Set(fmt.Sprintf(ckSnapshot, kind), records, DefaultSnapshotExpiration)
	logger.L.Info("Snapshot refreshed", "kind", kind, "records", len(records),
		"warnings", len(warnings), "duration", time.Since(startTime))
	return records, nil
}

func (s *viewServiceImpl) Invalidate(kind models.RecordKind) {
	s.snapshotCache.Delete(fmt.Sprintf(ckSnapshot, kind))
	logger.L.Info("Invalidated snapshot", "kind", kind)
}

func (s *viewServiceImpl) Filtered(ctx context.Context, kind models.RecordKind, spec models.FilterSpec, now time.Time) ([]models.CommerceRecord, error) {
	records, err := s.Snapshot(ctx, kind)
	if err != nil {
		return nil, err
	}
	return s.filterProcessor.Filter(records, spec, now), nil
}

func (s *viewServiceImpl) View(ctx context.Context, kind models.RecordKind, spec models.FilterSpec, key processors.SortKey, dir processors.SortDirection, page, perPage int, now time.Time) (*ViewResult, error) {
	filtered, err := s.Filtered(ctx, kind, spec, now)
	if err != nil {
		return nil, err
	}
	sorted := s.sortProcessor.Sort(filtered, key, dir)

	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	totalCount := len(sorted)
	totalPages := (totalCount + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return &ViewResult{
		Records:    sorted[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}, nil
}
