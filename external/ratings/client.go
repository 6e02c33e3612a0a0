package ratings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
	"github.com/ligadatos/liga-stats/internal/platform/resilience"
	"github.com/ligadatos/liga-stats/internal/usecase"
)

const defaultBaseURL = "https://ratings.ligadatos.example/v1"

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)
var errRatingsTransient = crerr.New("ratings transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches division and club coefficients from the ratings
// provider. It implements usecase.CoefficientProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

type divisionCoefficientItem struct {
	CompetitionID string  `json:"competition_id"`
	Value         float64 `json:"value"`
}

type clubCoefficientItem struct {
	ClubID string  `json:"club_id"`
	Value  float64 `json:"value"`
}

type coefficientEnvelope[T any] struct {
	Data []T `json:"data"`
}

func (c *Client) DivisionCoefficients(ctx context.Context, seasonID string, matchday int) ([]usecase.ExternalDivisionCoefficient, error) {
	if strings.TrimSpace(seasonID) == "" {
		return nil, fmt.Errorf("season id is required")
	}

	path := fmt.Sprintf("/seasons/%s/division-coefficients", url.PathEscape(seasonID))
	query := map[string]string{"matchday": strconv.Itoa(matchday)}

	var envelope coefficientEnvelope[divisionCoefficientItem]
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch division coefficients season_id=%s: %w", seasonID, err)
	}

	out := make([]usecase.ExternalDivisionCoefficient, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		competitionID := strings.TrimSpace(item.CompetitionID)
		if competitionID == "" {
			continue
		}
		out = append(out, usecase.ExternalDivisionCoefficient{
			CompetitionID: competitionID,
			Value:         item.Value,
		})
	}
	return out, nil
}

func (c *Client) ClubCoefficients(ctx context.Context, seasonID string, matchday int) ([]usecase.ExternalClubCoefficient, error) {
	if strings.TrimSpace(seasonID) == "" {
		return nil, fmt.Errorf("season id is required")
	}

	path := fmt.Sprintf("/seasons/%s/club-coefficients", url.PathEscape(seasonID))
	query := map[string]string{"matchday": strconv.Itoa(matchday)}

	var envelope coefficientEnvelope[clubCoefficientItem]
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch club coefficients season_id=%s: %w", seasonID, err)
	}

	out := make([]usecase.ExternalClubCoefficient, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		clubID := strings.TrimSpace(item.ClubID)
		if clubID == "" {
			continue
		}
		out = append(out, usecase.ExternalClubCoefficient{
			ClubID: clubID,
			Value:  item.Value,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "ratings circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: ratings provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	if c.apiKey != "" {
		values.Set("api_key", c.apiKey)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errRatingsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errRatingsTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errRatingsTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errRatingsTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "ratings request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		body = body[:limit] + "..."
	}
	return body
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "api_key=REDACTED")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
