package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/settleadmin/backend/src/database"
	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
	"golang.org/x/sync/errgroup"
)

type bulkServiceImpl struct {
	client       CommerceClient
	viewService  ViewService
	alertService AlertService
	concurrency  int
}

func NewBulkService(client CommerceClient, viewService ViewService, alertService AlertService, concurrency int) BulkService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &bulkServiceImpl{
		client:       client,
		viewService:  viewService,
		alertService: alertService,
		concurrency:  concurrency,
	}
}

// TransitionStatus fans one mutation request out per eligible id, joins on
// all of them settling, and reduces the outcomes. Requests are independent:
// one failing does not cancel the rest, and there is no transactional
// guarantee across the set. Once the batch settles the kind's snapshot is
// re-fetched so the view reflects backend truth, never a guessed
// intermediate state.
func (s *bulkServiceImpl) TransitionStatus(ctx context.Context, kind models.RecordKind, ids []string, target string) (*models.BulkReport, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if !kind.Mutable() {
		return nil, fmt.Errorf("%w: %s", ErrKindNotMutable, kind)
	}
	if !models.StatusAllowed(kind, target) {
		return nil, fmt.Errorf("%w: %q for kind %s", ErrInvalidStatus, target, kind)
	}

	eligible, ineligible, err := s.screenSelection(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: all %d selected records are in a terminal status", ErrNoEligibleIDs, len(ids))
	}

	report := &models.BulkReport{
		BatchID:       uuid.NewString(),
		Kind:          kind,
		TargetStatus:  target,
		Requested:     len(eligible),
		IneligibleIDs: ineligible,
	}
	logger.L.Info("Bulk transition START", "batchId", report.BatchID, "kind", kind,
		"target", target, "requested", len(eligible), "ineligible", len(ineligible))

	// Fire all requests concurrently and join. Closures always return nil
	// so one failure never short-circuits the group; per-id outcomes land
	// in the results slice instead.
	results := make([]error, len(eligible))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range eligible {
		g.Go(func() error {
			results[i] = s.client.UpdateStatus(ctx, kind, id, target)
			return nil
		})
	}
	g.Wait() // join barrier: the reduction below never races a request

	for i, resErr := range results {
		if resErr != nil {
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, eligible[i])
			logger.L.Warn("Bulk item failed", "batchId", report.BatchID, "id", eligible[i], "error", resErr)
		} else {
			report.Succeeded++
		}
	}
	report.SettledAt = time.Now().UTC()
	report.ResolveOutcome()

	s.settle(ctx, report)
	return report, nil
}

// screenSelection drops ids whose current status is terminal (e.g. already
// refunded) so no doomed request is sent. Unknown ids pass through; the
// backend is authoritative for those.
func (s *bulkServiceImpl) screenSelection(ctx context.Context, kind models.RecordKind, ids []string) (eligible, ineligible []string, err error) {
	snapshot, err := s.viewService.Snapshot(ctx, kind)
	if err != nil {
		return nil, nil, err
	}
	statusByID := make(map[string]string, len(snapshot))
	for _, r := range snapshot {
		statusByID[r.ID] = r.Status
	}

	for _, id := range ids {
		if status, ok := statusByID[id]; ok && models.StatusTerminal(kind, status) {
			ineligible = append(ineligible, id)
			continue
		}
		eligible = append(eligible, id)
	}
	return eligible, ineligible, nil
}

// settle records the batch, alerts on partial failure, and forces the next
// read to re-fetch. None of these steps can change the report.
func (s *bulkServiceImpl) settle(ctx context.Context, report *models.BulkReport) {
	if err := database.InsertBulkOperation(report); err != nil {
		logger.L.Error("Failed to record bulk operation", "batchId", report.BatchID, "error", err)
	}

	if report.Outcome == models.BulkOutcomePartial {
		if err := s.alertService.NotifyBulkPartialFailure(report); err != nil {
			logger.L.Error("Failed to send partial-failure alert", "batchId", report.BatchID, "error", err)
		}
	}

	s.viewService.Invalidate(report.Kind)
	if _, err := s.viewService.Refresh(ctx, report.Kind); err != nil {
		// The invalidated snapshot still guarantees the next read
		// re-fetches; log and move on.
		logger.L.Error("Post-batch refresh failed", "batchId", report.BatchID, "kind", report.Kind, "error", err)
	}

	logger.L.Info("Bulk transition SETTLED", "batchId", report.BatchID,
		"outcome", report.Outcome, "succeeded", report.Succeeded, "failed", report.Failed)
}
