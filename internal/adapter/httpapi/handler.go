package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/simaogato/wealthflow-dashboard/internal/adapter/present"
	"github.com/simaogato/wealthflow-dashboard/internal/domain"
	"github.com/simaogato/wealthflow-dashboard/internal/logger"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/session"
)

const (
	defaultRefreshLimit = 20
	maxRefreshLimit     = 500
	maxLoginBodyBytes   = 4 << 10
)

// Handler serves the JSON API
type Handler struct {
	sessionService   *session.SessionService
	dashboardService *dashboard.DashboardService
	presenter        *present.Presenter
}

// NewHandler creates a new Handler instance
func NewHandler(
	sessionService *session.SessionService,
	dashboardService *dashboard.DashboardService,
	presenter *present.Presenter,
) *Handler {
	return &Handler{
		sessionService:   sessionService,
		dashboardService: dashboardService,
		presenter:        presenter,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type refreshView struct {
	ID         string `json:"id"`
	StartedAt  string `json:"started_at"`
	DurationMs int64  `json:"duration_ms"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	Message    string `json:"message,omitempty"`
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleLogin exchanges the dashboard password for a session token
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)).Decode(&req); err != nil {
		sendJSONError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		sendJSONError(w, r, "Password is required", http.StatusBadRequest)
		return
	}

	token, err := h.sessionService.Login(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sendJSON(w, r, http.StatusOK, loginResponse{Token: token})
}

// HandleGetDashboard loads the sheet and returns the dashboard view
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	sendJSON(w, r, http.StatusOK, h.presenter.Present(result))
}

// HandleListRefreshes returns the most recent refresh records
func (h *Handler) HandleListRefreshes(w http.ResponseWriter, r *http.Request) {
	limit := defaultRefreshLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRefreshLimit {
			sendJSONError(w, r, "limit must be between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.dashboardService.RecentRefreshes(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]refreshView, 0, len(records))
	for _, rec := range records {
		out = append(out, refreshView{
			ID:         rec.ID.String(),
			StartedAt:  rec.StartedAt.UTC().Format(time.RFC3339),
			DurationMs: rec.Duration.Milliseconds(),
			Status:     string(rec.Status),
			Rows:       rec.Rows,
			Message:    rec.Message,
		})
	}

	sendJSON(w, r, http.StatusOK, map[string]interface{}{"refreshes": out})
}

// writeError maps domain errors to HTTP status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSourceUnreachable):
		sendJSONError(w, r, "Portfolio sheet is unreachable, try again later", http.StatusBadGateway)
	case errors.Is(err, domain.ErrNoData):
		sendJSONError(w, r, "Portfolio sheet has no data", http.StatusNotFound)
	case errors.Is(err, domain.ErrHeaderNotFound), errors.Is(err, domain.ErrUnpairedPrincipalColumn):
		sendJSONError(w, r, "Sheet layout not recognized: "+err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, session.ErrInvalidPassword):
		sendJSONError(w, r, "Invalid password", http.StatusUnauthorized)
	case errors.Is(err, session.ErrInvalidSession):
		sendJSONError(w, r, "Invalid or expired session", http.StatusUnauthorized)
	default:
		logger.FromContext(r.Context()).Error("Unexpected error in HTTP handler", "path", r.URL.Path, "error", err)
		sendJSONError(w, r, "Internal server error", http.StatusInternalServerError)
	}
}

func sendJSON(w http.ResponseWriter, r *http.Request, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("Failed to encode JSON response", "error", err)
	}
}

func sendJSONError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	logger.FromContext(r.Context()).Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	body := map[string]string{"error": message}
	if requestID := RequestIDFromContext(r.Context()); requestID != "" {
		body["request_id"] = requestID
	}
	sendJSON(w, r, statusCode, body)
}
