package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/simaogato/wealthflow-dashboard/internal/adapter/present"
	"github.com/simaogato/wealthflow-dashboard/internal/domain"
	"github.com/simaogato/wealthflow-dashboard/internal/logger"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/session"
)

const (
	defaultRefreshLimit = 20
	maxRefreshLimit     = 500
)

// Server implements the DashboardService gRPC server
type Server struct {
	SessionService   *session.SessionService
	DashboardService *dashboard.DashboardService
	Presenter        *present.Presenter
}

// NewServer creates a new gRPC server instance
func NewServer(
	sessionService *session.SessionService,
	dashboardService *dashboard.DashboardService,
	presenter *present.Presenter,
) *Server {
	return &Server{
		SessionService:   sessionService,
		DashboardService: dashboardService,
		Presenter:        presenter,
	}
}

// Login handles the Login RPC
func (s *Server) Login(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "password is required")
	}

	token, err := s.SessionService.Login(ctx, req.GetValue())
	if err != nil {
		return nil, mapError(err)
	}

	return wrapperspb.String(token), nil
}

// GetDashboard handles the GetDashboard RPC
func (s *Server) GetDashboard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	result, err := s.DashboardService.GetDashboard(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	out, err := toStruct(s.Presenter.Present(result))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// ListRefreshes handles the ListRefreshes RPC
func (s *Server) ListRefreshes(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.Struct, error) {
	limit := int(req.GetValue())
	if limit < 0 || limit > maxRefreshLimit {
		return nil, status.Errorf(codes.InvalidArgument, "limit must be between 0 and %d", maxRefreshLimit)
	}
	if limit == 0 {
		limit = defaultRefreshLimit
	}

	records, err := s.DashboardService.RecentRefreshes(ctx, limit)
	if err != nil {
		return nil, mapError(err)
	}

	refreshes := make([]interface{}, 0, len(records))
	for _, r := range records {
		refreshes = append(refreshes, map[string]interface{}{
			"id":          r.ID.String(),
			"started_at":  r.StartedAt.UTC().Format(time.RFC3339),
			"duration_ms": float64(r.Duration.Milliseconds()),
			"status":      string(r.Status),
			"rows":        float64(r.Rows),
			"message":     r.Message,
		})
	}

	out, err := structpb.NewStruct(map[string]interface{}{"refreshes": refreshes})
	if err != nil {
		return nil, mapError(fmt.Errorf("failed to encode refresh records: %w", err))
	}
	return out, nil
}

// toStruct converts a JSON-tagged value into a protobuf Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode view: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode view: %w", err)
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSourceUnreachable):
		return status.Error(codes.Unavailable, "portfolio sheet is unreachable, try again later")
	case errors.Is(err, domain.ErrNoData):
		return status.Error(codes.NotFound, "portfolio sheet has no data")
	case errors.Is(err, domain.ErrHeaderNotFound),
		errors.Is(err, domain.ErrUnpairedPrincipalColumn):
		return status.Errorf(codes.FailedPrecondition, "sheet layout not recognized: %v", err)
	case errors.Is(err, session.ErrInvalidPassword):
		return status.Error(codes.Unauthenticated, "invalid password")
	case errors.Is(err, session.ErrInvalidSession):
		return status.Error(codes.Unauthenticated, "invalid session")
	default:
		logger.L.Error("Unexpected error in gRPC handler", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
