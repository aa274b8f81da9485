package importers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultSourceURL is the published bookstore dataset.
const DefaultSourceURL = "https://cdn.shopify.com/s/files/1/0883/3282/8936/files/data_bookstore_final.json?v=1762418524"

// Source provides the raw import document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Location identifies the source in logs and import sessions.
	Location() string
}

// HTTPSource downloads the document with a single blocking GET.
// There is no caching and no retry.
type HTTPSource struct {
	URL        string
	httpClient *http.Client
}

// NewHTTPSource creates an HTTP source. A zero timeout means the request
// waits as long as the server takes.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSource) Location() string {
	return s.URL
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", ErrFetch, &StatusError{StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	return body, nil
}

// FileSource reads the document from the local filesystem.
type FileSource struct {
	Path string
}

func (s *FileSource) Location() string {
	return "file://" + s.Path
}

func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}

// SourceFor picks the source for a location: http(s) URLs are downloaded,
// file:// URLs and bare paths are read from disk.
func SourceFor(location string, timeout time.Duration) Source {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, timeout)
	case strings.HasPrefix(location, "file://"):
		return &FileSource{Path: strings.TrimPrefix(location, "file://")}
	default:
		return &FileSource{Path: location}
	}
}
