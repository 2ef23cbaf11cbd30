package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
	"github.com/simaogato/wealthflow-dashboard/internal/logger"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/transform"
)

// DashboardService loads the sheet and derives the dashboard from it
type DashboardService struct {
	Source      domain.TableSource
	Transformer *transform.Transformer
	RefreshRepo domain.RefreshLogRepository // optional, nil disables the refresh log
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	source domain.TableSource,
	transformer *transform.Transformer,
	refreshRepo domain.RefreshLogRepository,
) *DashboardService {
	return &DashboardService{
		Source:      source,
		Transformer: transformer,
		RefreshRepo: refreshRepo,
		now:         time.Now,
	}
}

// GetDashboard fetches the sheet and transforms it.
// Every call is recorded in the refresh log when one is configured;
// a failed write is logged and does not fail the refresh.
func (s *DashboardService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	start := s.now()

	dashboard, err := s.refresh(ctx)

	record := &domain.RefreshRecord{
		ID:        uuid.New(),
		StartedAt: start,
		Duration:  s.now().Sub(start),
		Status:    domain.StatusFromError(err),
	}
	switch {
	case err != nil:
		record.Message = err.Error()
	case !dashboard.HasData():
		record.Status = domain.RefreshStatusEmpty
	}
	if dashboard != nil && dashboard.Table != nil {
		record.Rows = len(dashboard.Table.Rows)
	}

	s.record(ctx, record)

	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

// RecentRefreshes lists the latest refresh records, newest first.
// It returns an empty list when the refresh log is disabled.
func (s *DashboardService) RecentRefreshes(ctx context.Context, limit int) ([]*domain.RefreshRecord, error) {
	if s.RefreshRepo == nil {
		return []*domain.RefreshRecord{}, nil
	}

	records, err := s.RefreshRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list refresh records: %w", err)
	}
	return records, nil
}

func (s *DashboardService) refresh(ctx context.Context) (*domain.Dashboard, error) {
	if s.Source == nil || s.Transformer == nil {
		return nil, errors.New("dashboard service is not configured")
	}

	raw, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	dashboard, err := s.Transformer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to transform sheet: %w", err)
	}
	return dashboard, nil
}

func (s *DashboardService) record(ctx context.Context, record *domain.RefreshRecord) {
	log := logger.FromContext(ctx)
	log.Info("Dashboard refreshed",
		"refresh_id", record.ID.String(),
		"status", string(record.Status),
		"rows", record.Rows,
		"duration_ms", record.Duration.Milliseconds())

	if s.RefreshRepo == nil {
		return
	}
	if err := s.RefreshRepo.Add(ctx, record); err != nil {
		log.Error("Failed to record refresh", "refresh_id", record.ID.String(), "error", err)
	}
}
