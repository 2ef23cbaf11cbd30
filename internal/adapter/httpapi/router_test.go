package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/wealthflow-dashboard/internal/adapter/present"
	"github.com/simaogato/wealthflow-dashboard/internal/domain"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/session"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/transform"
)

const testPassword = "correct horse"

type stubSource struct {
	raw *domain.RawTable
	err error
}

func (s *stubSource) Fetch(ctx context.Context) (*domain.RawTable, error) {
	return s.raw, s.err
}

func portfolioSheet() *domain.RawTable {
	return &domain.RawTable{Records: [][]string{
		{"", "자산 현황", ""},
		{"날짜", "총 자산", "삼성증권", "업비트", "비트코인 원금", "비트코인"},
		{"2024-01-02", "1,000,000", "600,000", "400,000", "500,000", "400,000"},
	}}
}

func newTestRouter(t *testing.T, src domain.TableSource, loginsPerMinute int) http.Handler {
	t.Helper()

	hash, err := session.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	sessions, err := session.NewSessionService(hash, []byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	transformer, err := transform.NewTransformer(domain.DefaultSheetConfig())
	require.NoError(t, err)
	presenter, err := present.NewPresenter("KRW")
	require.NoError(t, err)

	h := NewHandler(sessions, dashboard.NewDashboardService(src, transformer, nil), presenter)
	return NewRouter(h, sessions, session.NewLoginLimiter(loginsPerMinute))
}

func do(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/api/session", `{"password":"`+testPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubSource{raw: portfolioSheet()}, 10)

	rec := do(t, router, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t, &stubSource{raw: portfolioSheet()}, 100)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "wrong password", body: `{"password":"battery staple"}`, status: http.StatusUnauthorized},
		{name: "missing password", body: `{}`, status: http.StatusBadRequest},
		{name: "malformed body", body: `{"password":`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/session", tt.body, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	t.Run("correct password", func(t *testing.T) {
		assert.NotEmpty(t, loginToken(t, router))
	})
}

func TestErrorBody_CarriesRequestID(t *testing.T) {
	router := newTestRouter(t, &stubSource{raw: portfolioSheet()}, 10)

	rec := do(t, router, http.MethodGet, "/api/dashboard", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, rec.Header().Get("X-Request-ID"), body["request_id"])
	assert.NotEmpty(t, body["request_id"])
}

func TestLogin_RateLimited(t *testing.T) {
	router := newTestRouter(t, &stubSource{raw: portfolioSheet()}, 2)

	for i := 0; i < 2; i++ {
		rec := do(t, router, http.MethodPost, "/api/session", `{"password":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := do(t, router, http.MethodPost, "/api/session", `{"password":"`+testPassword+`"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	router := newTestRouter(t, &stubSource{raw: portfolioSheet()}, 10)
	token := loginToken(t, router)

	rec := do(t, router, http.MethodGet, "/api/dashboard", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var view present.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	assert.True(t, view.HasData)
	assert.Equal(t, "2024-01-02", view.Date)
	assert.Equal(t, "₩1,000,000", view.Total.Display)

	require.Len(t, view.Holdings, 1)
	assert.Equal(t, "비트코인", view.Holdings[0].Name)
	assert.Equal(t, "-20.00%", view.Holdings[0].Return)

	require.Len(t, view.Buckets, 3)
	assert.Equal(t, "주식", view.Buckets[0].Label)
	assert.Equal(t, "600000", view.Buckets[0].Total.Value)
	assert.Equal(t, "코인", view.Buckets[1].Label)
	assert.Equal(t, "400000", view.Buckets[1].Total.Value)
	assert.Equal(t, "0", view.Buckets[2].Total.Value)

	require.Len(t, view.Accounts, 2, "only account columns present in the sheet are listed")
	assert.Equal(t, "삼성증권", view.Accounts[0].Account)
	assert.Equal(t, "업비트", view.Accounts[1].Account)
}

func TestGetDashboard_RequiresSession(t *testing.T) {
	router := newTestRouter(t, &stubSource{raw: portfolioSheet()}, 10)

	rec := do(t, router, http.MethodGet, "/api/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/dashboard", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetDashboard_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		source *stubSource
		status int
	}{
		{
			name:   "unreachable",
			source: &stubSource{err: fmt.Errorf("%w: connection refused", domain.ErrSourceUnreachable)},
			status: http.StatusBadGateway,
		},
		{
			name:   "no data",
			source: &stubSource{raw: &domain.RawTable{}},
			status: http.StatusNotFound,
		},
		{
			name:   "header not found",
			source: &stubSource{raw: &domain.RawTable{Records: [][]string{{"Date"}, {"2024-01-01"}}}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "unpaired principal column",
			source: &stubSource{raw: &domain.RawTable{Records: [][]string{{"날짜", "비트코인 원금"}}}},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.source, 10)
			rec := do(t, router, http.MethodGet, "/api/dashboard", "", loginToken(t, router))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestListRefreshes(t *testing.T) {
	router := newTestRouter(t, &stubSource{raw: portfolioSheet()}, 10)
	token := loginToken(t, router)

	rec := do(t, router, http.MethodGet, "/api/refreshes", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"refreshes":[]}`, rec.Body.String(), "refresh log is disabled")

	rec = do(t, router, http.MethodGet, "/api/refreshes?limit=0", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
