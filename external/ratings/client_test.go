package ratings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ligadatos/liga-stats/internal/platform/logging"
	"github.com/ligadatos/liga-stats/internal/platform/resilience"
	"github.com/ligadatos/liga-stats/internal/usecase"
)

func newTestClient(serverURL string, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        serverURL,
		APIKey:         "secret-key",
		Timeout:        2 * time.Second,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_DivisionCoefficients(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seasons/season-2026/division-coefficients" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("matchday") != "3" {
			t.Errorf("unexpected matchday: %s", r.URL.Query().Get("matchday"))
		}
		if r.URL.Query().Get("api_key") != "secret-key" {
			t.Errorf("missing api key")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"competition_id":"comp-first","value":1.3},
			{"competition_id":"","value":9.9},
			{"competition_id":"comp-second","value":0.9}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})
	got, err := client.DivisionCoefficients(context.Background(), "season-2026", 3)
	if err != nil {
		t.Fatalf("fetch division coefficients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("blank competition ids must be dropped, got %d items", len(got))
	}
	if got[0].CompetitionID != "comp-first" || got[0].Value != 1.3 {
		t.Fatalf("unexpected first item: %+v", got[0])
	}
}

func TestClient_ClubCoefficients(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seasons/season-2026/club-coefficients" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"club_id":"club-atlas","value":1.1}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})
	got, err := client.ClubCoefficients(context.Background(), "season-2026", 1)
	if err != nil {
		t.Fatalf("fetch club coefficients: %v", err)
	}
	if len(got) != 1 || got[0] != (usecase.ExternalClubCoefficient{ClubID: "club-atlas", Value: 1.1}) {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"club_id":"club-atlas","value":1.0}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1, resilience.CircuitBreakerConfig{})
	got, err := client.ClubCoefficients(context.Background(), "season-2026", 1)
	if err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected items: %+v", got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 requests, got %d", calls.Load())
	}
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3, resilience.CircuitBreakerConfig{})
	_, err := client.ClubCoefficients(context.Background(), "season-2026", 1)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("client errors must not be retried, got %d requests", calls.Load())
	}
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.ClubCoefficients(ctx, "season-2026", 1); err == nil {
			t.Fatal("expected provider failure")
		}
	}

	_, err := client.ClubCoefficients(ctx, "season-2026", 1)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected fast rejection from open circuit, got %v", err)
	}
}

func TestClient_RequiresSeasonID(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://localhost:0", 0, resilience.CircuitBreakerConfig{})
	if _, err := client.DivisionCoefficients(context.Background(), " ", 1); err == nil {
		t.Fatal("expected error for blank season id")
	}
}

func TestSanitizeSensitiveText_RedactsKey(t *testing.T) {
	t.Parallel()

	msg := `Get "https://host/v1/x?api_key=secret-key&matchday=1": dial tcp: timeout`
	got := sanitizeSensitiveText(msg, "secret-key")
	if strings.Contains(got, "secret-key") {
		t.Fatalf("api key leaked: %s", got)
	}
	if !strings.Contains(got, "api_key=REDACTED") {
		t.Fatalf("expected redaction marker, got %s", got)
	}
}

func TestRedactAPIURL(t *testing.T) {
	t.Parallel()

	got := redactAPIURL("https://host/v1/x?api_key=abc123&matchday=1")
	if strings.Contains(got, "abc123") {
		t.Fatalf("api key leaked: %s", got)
	}
}
