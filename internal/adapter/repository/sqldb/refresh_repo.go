package sqldb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// refreshLogRepository implements domain.RefreshLogRepository
type refreshLogRepository struct {
	db *DB
}

// NewRefreshLogRepository creates a new refresh log repository
func NewRefreshLogRepository(db *DB) domain.RefreshLogRepository {
	return &refreshLogRepository{db: db}
}

// Add records the outcome of a refresh. A record without ID gets a fresh one.
func (r *refreshLogRepository) Add(ctx context.Context, record *domain.RefreshRecord) error {
	if record == nil {
		return errors.New("refresh record cannot be nil")
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		return errors.New("refresh record status cannot be empty")
	}

	query := r.db.Rebind(`
		INSERT INTO refresh_log (id, started_at, duration_ms, status, rows_count, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(),
		record.StartedAt.UTC(),
		record.Duration.Milliseconds(),
		string(record.Status),
		record.Rows,
		record.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to add refresh record: %w", err)
	}

	return nil
}

// ListRecent retrieves up to limit records, newest first
func (r *refreshLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.RefreshRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := r.db.Rebind(`
		SELECT id, started_at, duration_ms, status, rows_count, message
		FROM refresh_log
		ORDER BY started_at DESC, id
		LIMIT $1
	`)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh log: %w", err)
	}
	defer rows.Close()

	var records []*domain.RefreshRecord
	for rows.Next() {
		var (
			record     domain.RefreshRecord
			idStr      string
			durationMs int64
			status     string
		)

		if err := rows.Scan(&idStr, &record.StartedAt, &durationMs, &status, &record.Rows, &record.Message); err != nil {
			return nil, fmt.Errorf("failed to scan refresh record: %w", err)
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse refresh record ID: %w", err)
		}
		record.ID = id
		record.StartedAt = record.StartedAt.UTC()
		record.Duration = time.Duration(durationMs) * time.Millisecond
		record.Status = domain.RefreshStatus(status)

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating refresh log: %w", err)
	}

	return records, nil
}
