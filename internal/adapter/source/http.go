package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
	"github.com/simaogato/wealthflow-dashboard/internal/logger"
)

// HTTPSource fetches a published CSV export over HTTP.
// Decoded tables are kept for the configured TTL so that bursts of
// requests hit the remote sheet once.
type HTTPSource struct {
	url    string
	client *http.Client
	cache  *cache.Cache // nil when caching is disabled
}

// NewHTTPSource creates a source for url. A ttl of zero or less disables caching.
func NewHTTPSource(url string, timeout, ttl time.Duration) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Fetch implements domain.TableSource.
func (s *HTTPSource) Fetch(ctx context.Context) (*domain.RawTable, error) {
	if s.cache != nil {
		if cached, found := s.cache.Get(s.url); found {
			logger.FromContext(ctx).Debug("Serving sheet from cache", "url", s.url)
			return cached.(*domain.RawTable), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", domain.ErrSourceUnreachable, err)
	}
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch sheet: %w", domain.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrSourceUnreachable, resp.StatusCode)
	}

	table, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Fetched sheet",
		"url", s.url,
		"records", len(table.Records),
		"duration_ms", time.Since(start).Milliseconds())

	if s.cache != nil {
		s.cache.Set(s.url, table, cache.DefaultExpiration)
	}
	return table, nil
}

// Invalidate drops the cached table, if any.
func (s *HTTPSource) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(s.url)
	}
}
