package health

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Fetcher performs one poll against the health endpoint.
type Fetcher interface {
	Fetch(ctx context.Context) (Report, error)
}

// HTTPFetcher issues GET requests to a fixed endpoint URL.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	logger   *slog.Logger
}

type FetcherOption func(*HTTPFetcher)

// WithTimeout bounds each request. Zero means no timeout. A client passed
// with WithHTTPClient is copied, never modified.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.timeout = timeout
	}
}

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = client
	}
}

func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		f.logger = logger
	}
}

// NewHTTPFetcher creates a fetcher for the given endpoint. The default client
// has no timeout and its transport is wrapped with otelhttp.
func NewHTTPFetcher(endpoint string, opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		endpoint: endpoint,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.timeout > 0 {
		client := *f.client
		client.Timeout = f.timeout
		f.client = &client
	}

	return f
}

// Endpoint returns the URL this fetcher polls.
func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

// Fetch sends one GET and decodes the body. The status code is not
// interpreted; a non-JSON body fails with ErrParse whatever the status.
func (f *HTTPFetcher) Fetch(ctx context.Context) (Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return Report{}, &FetchError{Kind: ErrNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return Report{}, &FetchError{Kind: ErrNetwork, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		f.logger.Warn("Health endpoint returned non-200 status",
			slog.String("endpoint", f.endpoint),
			slog.Int("status", res.StatusCode))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Report{}, &FetchError{Kind: ErrNetwork, Err: err}
	}

	report, err := DecodeReport(body)
	if err != nil {
		return Report{}, &FetchError{Kind: ErrParse, Err: fmt.Errorf("decode health report: %w", err)}
	}

	return report, nil
}
