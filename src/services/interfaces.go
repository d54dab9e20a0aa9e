package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/username/settleadmin/backend/src/models"
	"github.com/username/settleadmin/backend/src/processors"
)

// CommerceClient is the boundary to the remote commerce REST API. One
// round trip per call; no retries (a failed call requires an explicit
// user-triggered retry).
type CommerceClient interface {
	// FetchCollection returns the raw data array for a kind's admin endpoint.
	FetchCollection(ctx context.Context, kind models.RecordKind) (json.RawMessage, error)
	// UpdateStatus applies a single status mutation to one record. The
	// backend has no batch endpoint; bulk updates fan out over this.
	UpdateStatus(ctx context.Context, kind models.RecordKind, id, status string) error
	Ping(ctx context.Context) error
}

// ViewResult is one page of a filtered, sorted collection.
type ViewResult struct {
	Records    []models.CommerceRecord `json:"records"`
	Page       int                     `json:"page"`
	PerPage    int                     `json:"perPage"`
	TotalPages int                     `json:"totalPages"`
	TotalCount int                     `json:"totalCount"`
}

// ViewService owns the fetch→normalize→shape pipeline and the only shared
// mutable state in the system: the most recently fetched snapshot per kind.
// Engine computations themselves are pure; the snapshot is replaced
// wholesale on every refresh, never patched in place.
type ViewService interface {
	// Snapshot returns the current normalized collection for a kind,
	// fetching if no snapshot is cached.
	Snapshot(ctx context.Context, kind models.RecordKind) ([]models.CommerceRecord, error)
	// Refresh unconditionally re-fetches and re-normalizes a kind.
	Refresh(ctx context.Context, kind models.RecordKind) ([]models.CommerceRecord, error)
	// Invalidate drops the cached snapshot so the next read re-fetches.
	Invalidate(kind models.RecordKind)

	// Filtered applies a filter spec to the current snapshot.
	Filtered(ctx context.Context, kind models.RecordKind, spec models.FilterSpec, now time.Time) ([]models.CommerceRecord, error)
	// View filters, sorts and pages in one call.
	View(ctx context.Context, kind models.RecordKind, spec models.FilterSpec, key processors.SortKey, dir processors.SortDirection, page, perPage int, now time.Time) (*ViewResult, error)
}

// BulkService coordinates bulk status transitions.
type BulkService interface {
	// TransitionStatus issues one concurrent mutation per eligible id,
	// waits for all to settle, and reduces the outcomes. Terminal-status
	// ids are screened out up front. After the batch settles the kind's
	// snapshot is re-fetched, never optimistically patched.
	TransitionStatus(ctx context.Context, kind models.RecordKind, ids []string, target string) (*models.BulkReport, error)
}

// ExportService serializes an ordered collection into a download payload.
type ExportService interface {
	// Export renders records in the given format ("csv" or "json") and
	// returns the payload with its content type.
	Export(records []models.CommerceRecord, kind models.RecordKind, format string) ([]byte, string, error)
}

// AlertService notifies operators of conditions that must not pass
// silently, such as a bulk batch that only partially succeeded.
type AlertService interface {
	NotifyBulkPartialFailure(report *models.BulkReport) error
}
