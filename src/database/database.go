package database

import (
	"database/sql"
	"fmt"
	stdlog "log"
	"time"

	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// InitDB opens the local sqlite database holding the bulk-operation audit
// log. Normalized records are never persisted here; they live for one
// fetch-render cycle only.
func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS bulk_operations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		target_status TEXT NOT NULL,
		requested INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		settled_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := DB.Exec(createTableStatement); err != nil {
		stdlog.Fatalf("failed to create bulk_operations table: %v", err)
	}

	if logger.L != nil {
		logger.L.Info("Database initialized", "databasePath", databasePath)
	}
}

// BulkOperationRow is one audit-log entry of a settled bulk batch.
type BulkOperationRow struct {
	BatchID      string    `json:"batchId"`
	Kind         string    `json:"kind"`
	TargetStatus string    `json:"targetStatus"`
	Requested    int       `json:"requested"`
	Succeeded    int       `json:"succeeded"`
	Failed       int       `json:"failed"`
	Outcome      string    `json:"outcome"`
	SettledAt    time.Time `json:"settledAt"`
}

// InsertBulkOperation appends a settled batch to the audit log.
func InsertBulkOperation(report *models.BulkReport) error {
	_, err := DB.Exec(`INSERT INTO bulk_operations
		(batch_id, kind, target_status, requested, succeeded, failed, outcome, settled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.BatchID, string(report.Kind), report.TargetStatus,
		report.Requested, report.Succeeded, report.Failed, report.Outcome, report.SettledAt)
	if err != nil {
		return fmt.Errorf("error inserting bulk operation %s: %w", report.BatchID, err)
	}
	return nil
}

// ListRecentBulkOperations returns the newest audit-log entries, most
// recent first.
func ListRecentBulkOperations(limit int) ([]BulkOperationRow, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := DB.Query(`SELECT batch_id, kind, target_status, requested, succeeded, failed, outcome, settled_at
		FROM bulk_operations ORDER BY settled_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying bulk operations: %w", err)
	}
	defer rows.Close()

	var ops []BulkOperationRow
	for rows.Next() {
		var op BulkOperationRow
		if scanErr := rows.Scan(&op.BatchID, &op.Kind, &op.TargetStatus,
			&op.Requested, &op.Succeeded, &op.Failed, &op.Outcome, &op.SettledAt); scanErr != nil {
			return nil, fmt.Errorf("error scanning bulk operation row: %w", scanErr)
		}
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over bulk operation rows: %w", err)
	}
	if ops == nil {
		ops = []BulkOperationRow{}
	}
	return ops, nil
}
