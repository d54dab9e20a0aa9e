package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/username/settleadmin/backend/src/config"
	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
)

// NewAlertService picks the alert provider from config, falling back to the
// mock when the mailgun settings are incomplete so a misconfigured console
// still runs.
func NewAlertService() AlertService {
	provider := strings.ToLower(config.Cfg.AlertProvider)
	logger.L.Info("Initializing alert service", "provider", provider)

	switch provider {
	case "mailgun":
		if config.Cfg.MailgunDomain == "" || config.Cfg.MailgunPrivateAPIKey == "" || config.Cfg.AlertRecipient == "" {
			logger.L.Warn("Mailgun configuration incomplete (Domain, API Key, or AlertRecipient missing). Falling back to MockAlertService.")
			return &MockAlertService{}
		}
		mg := mailgun.NewMailgun(config.Cfg.MailgunDomain, config.Cfg.MailgunPrivateAPIKey)
		return &MailgunAlertService{
			mg:          mg,
			senderEmail: config.Cfg.SenderEmail,
			senderName:  config.Cfg.SenderName,
			recipient:   config.Cfg.AlertRecipient,
		}
	default:
		return &MockAlertService{}
	}
}

// MockAlertService logs alerts instead of delivering them.
type MockAlertService struct{}

func (s *MockAlertService) NotifyBulkPartialFailure(report *models.BulkReport) error {
	logger.L.Warn("MOCK ALERT: bulk transition partially failed",
		"batchId", report.BatchID, "kind", report.Kind, "target", report.TargetStatus,
		"requested", report.Requested, "succeeded", report.Succeeded, "failed", report.Failed)
	return nil
}

type MailgunAlertService struct {
	mg          mailgun.Mailgun
	senderEmail string
	senderName  string
	recipient   string
}

func (s *MailgunAlertService) NotifyBulkPartialFailure(report *models.BulkReport) error {
	from := fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail)
	subject := fmt.Sprintf("Bulk %s update partially failed (%d of %d)", report.Kind, report.Failed, report.Requested)

	body := fmt.Sprintf(`Bulk status transition %s settled with a partial failure.

Kind:         %s
Target:       %s
Requested:    %d
Succeeded:    %d
Failed:       %d
Failed IDs:   %s

The affected records were NOT updated. The console view has been re-fetched
from the backend, so it reflects the actual state.`,
		report.BatchID, report.Kind, report.TargetStatus,
		report.Requested, report.Succeeded, report.Failed,
		strings.Join(report.FailedIDs, ", "))

	message := s.mg.NewMessage(from, subject, body, s.recipient)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()
	resp, id, err := s.mg.Send(ctx, message)
	if err != nil {
		logger.L.Error("Failed to send alert via Mailgun", "error", err, "mailgunResp", resp, "mailgunId", id)
		return fmt.Errorf("mailgun send failed: %w", err)
	}
	logger.L.Info("Partial-failure alert sent via Mailgun", "batchId", report.BatchID, "id", id)
	return nil
}
