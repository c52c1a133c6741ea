package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrRetrieval is returned when the configuration document could not be
	// fetched or read. An empty document is not a retrieval error.
	ErrRetrieval = errors.New("could not retrieve file list")
)

const (
	// FetchRateLimitIntervalSeconds is the minimum spacing between catalog
	// fetches. Only relevant for repeated builds (watch mode); a single load
	// is never delayed.
	FetchRateLimitIntervalSeconds = 1
	// FetchRateLimitBurst is the number of immediate fetches allowed before
	// the limiter starts pacing.
	FetchRateLimitBurst = 1
)

var log Logger

// Logger interface defines the logging methods used by the catalog service.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

func init() {
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger sets the logger.
func SetLogger(l Logger) {
	if l != nil {
		log = l
	}
}

// Service fetches the configuration document and turns it into a Catalog.
type Service struct {
	documentURL  string
	httpClient   *http.Client
	fetchLimiter *rate.Limiter
}

// NewService returns a new Service fetching the given document URL.
// No timeout is set on the default client; inject one with SetHTTPClient if
// a hung fetch must not block the caller forever.
func NewService(documentURL string) *Service {
	return &Service{
		documentURL: documentURL,
		httpClient:  &http.Client{},
		fetchLimiter: rate.NewLimiter(
			rate.Every(FetchRateLimitIntervalSeconds*time.Second),
			FetchRateLimitBurst,
		),
	}
}

// SetDocumentURL sets the URL of the configuration document.
func (s *Service) SetDocumentURL(documentURL string) {
	s.documentURL = documentURL
}

// SetHTTPClient sets the http client
// default: http.Client{}
func (s *Service) SetHTTPClient(httpClient *http.Client) {
	if httpClient != nil {
		s.httpClient = httpClient
	}
}

// Load fetches the configuration document and builds a Catalog from it.
// Exactly one outbound read is performed, with no retry. Any transport error
// or non-2xx status wraps ErrRetrieval; a successfully fetched document with
// no entries yields an empty Catalog, which callers must not confuse with a
// failed load.
func (s *Service) Load(ctx context.Context) (*Catalog, error) {
	text, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	entries := ParseDocument(text)
	log.Debug("catalog loaded", "entries", len(entries))
	return New(entries), nil
}

func (s *Service) fetch(ctx context.Context) (string, error) {
	if err := s.fetchLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.documentURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", ErrRetrieval, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected HTTP status code %d", ErrRetrieval, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: error reading response body: %w", ErrRetrieval, err)
	}
	return string(body), nil
}
