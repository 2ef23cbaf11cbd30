package source

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// FileSource reads a CSV export saved on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path on every fetch.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch implements domain.TableSource.
func (s *FileSource) Fetch(ctx context.Context) (*domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreachable, err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", domain.ErrSourceUnreachable, s.path, err)
	}
	defer f.Close()

	return Decode(f)
}

// New picks the source for location: http(s) URLs are fetched remotely,
// anything else is read as a local file.
func New(location string, timeout, ttl time.Duration) domain.TableSource {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location, timeout, ttl)
	}
	return NewFileSource(location)
}
