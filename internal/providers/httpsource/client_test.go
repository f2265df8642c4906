package httpsource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/schedule-board-service/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestFetchDocumentEscapesNameAndReturnsBody(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("Team,Members\nAlpha,\"A, B\"\n"))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL + "/assets/"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	body, err := c.FetchDocument(context.Background(), "MGT 575 Final Project Schedule(Final Team Rosters).csv")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(body, "Team,Members") {
		t.Fatalf("unexpected body %q", body)
	}
	if gotPath != "/assets/MGT%20575%20Final%20Project%20Schedule%28Final%20Team%20Rosters%29.csv" {
		t.Fatalf("unexpected request path %s", gotPath)
	}
}

func TestFetchDocumentNonSuccessReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchDocument(context.Background(), "roster.csv")

	st, ok := providers.AsStatusError(err)
	if !ok {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if st.StatusCode != http.StatusNotFound || st.Body != "missing" || st.Document != "roster.csv" {
		t.Fatalf("unexpected status error %+v", st)
	}
}

func TestFetchDocumentRateLimitedReturnsRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchDocument(context.Background(), "schedule.csv")

	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second || rl.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestFetchDocumentEmptyBodyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	body, err := c.FetchDocument(context.Background(), "schedule.csv")
	if err != nil || body != "" {
		t.Fatalf("expected empty body without error, got %q, %v", body, err)
	}
}

func TestFetchDocumentAcceptsAnySuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		_, _ = w.Write([]byte("Team,Members\n"))
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	body, err := c.FetchDocument(context.Background(), "roster.csv")
	if err != nil || body != "Team,Members\n" {
		t.Fatalf("expected 203 body to be accepted, got %q, %v", body, err)
	}
}

func TestFetchDocumentRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("Team,\"A\"\n", maxDocumentBytes/9+1)))
		_, _ = w.Write([]byte("Team Last,\"Zed\"\n"))
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	body, err := c.FetchDocument(context.Background(), "roster.csv")
	if !errors.Is(err, providers.ErrDocumentTooLarge) {
		t.Fatalf("expected ErrDocumentTooLarge, got %v", err)
	}
	if body != "" {
		t.Fatalf("expected no partial document, got %d bytes", len(body))
	}
}

func TestFetchDocumentAtSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", maxDocumentBytes)))
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	body, err := c.FetchDocument(context.Background(), "roster.csv")
	if err != nil || len(body) != maxDocumentBytes {
		t.Fatalf("expected full %d byte body, got %d, %v", maxDocumentBytes, len(body), err)
	}
}

func TestFetchDocumentTransportError(t *testing.T) {
	c, _ := NewClient(Config{
		BaseURL: "http://assets.invalid",
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial failed")
		})},
	})
	if _, err := c.FetchDocument(context.Background(), "schedule.csv"); err == nil || !strings.Contains(err.Error(), "dial failed") {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestFetchDocumentHonoursCanceledContext(t *testing.T) {
	c, _ := NewClient(Config{
		BaseURL: "http://assets.invalid",
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return nil, req.Context().Err()
		})},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchDocument(ctx, "schedule.csv"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestFetchDocumentBodyReadError(t *testing.T) {
	c, _ := NewClient(Config{
		BaseURL: "http://assets.invalid",
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(errReader{}),
				Header:     make(http.Header),
			}, nil
		})},
	})
	if _, err := c.FetchDocument(context.Background(), "schedule.csv"); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "  "}); !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("expected ErrMissingBaseURL, got %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }
