package httpsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/schedule-board-service/internal/providers"
)

// ErrMissingBaseURL is returned when the client is built without an asset base URL.
var ErrMissingBaseURL = errors.New("httpsource: base URL is required")

// Config controls how the client reaches the static asset host.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches CSV documents published as static assets.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client rooted at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base := normalizeBaseURL(cfg.BaseURL)
	if base == "" {
		return nil, ErrMissingBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("httpsource: invalid base URL: %w", err)
	}
	return &Client{
		baseURL:    base,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}, nil
}

// FetchDocument issues GET <base>/<escaped name> and returns the body text.
func (c *Client) FetchDocument(ctx context.Context, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(name), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: fetch %q: %w", sourceName, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &providers.RateLimitError{
			Source:     sourceName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    fmt.Sprintf("%s: rate limited fetching %q", sourceName, name),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", &providers.StatusError{
			Source:     sourceName,
			Document:   name,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	// One byte past the limit tells a full document apart from a cut one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return "", fmt.Errorf("%s: read %q: %w", sourceName, name, err)
	}
	if len(body) > maxDocumentBytes {
		return "", fmt.Errorf("%s: %q larger than %d bytes: %w", sourceName, name, maxDocumentBytes, providers.ErrDocumentTooLarge)
	}
	return string(body), nil
}

func (c *Client) documentURL(name string) string {
	return c.baseURL + "/" + url.PathEscape(name)
}
