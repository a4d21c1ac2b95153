package apifootball

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
	"github.com/riskibarqy/afcon-extractor/internal/platform/resilience"
)

const (
	defaultBaseURL           = "https://v3.football.api-sports.io"
	defaultTimeout           = 10 * time.Second
	defaultMaxRetries        = 3
	defaultRateLimitCooldown = 60 * time.Second
	defaultTimeoutBackoff    = 5 * time.Second
	maxBodyBytes             = 6 << 20

	apiKeyHeader = "x-apisports-key"

	EndpointFixtures   = "fixtures"
	EndpointStandings  = "standings"
	EndpointTopScorers = "players/topscorers"
)

var tracer = otel.Tracer("afcon-extractor/external/apifootball")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	// MaxRetries is the total number of attempts per call, including the
	// first one.
	MaxRetries        int
	RateLimitCooldown time.Duration
	TimeoutBackoff    time.Duration
	Logger            *logging.Logger
	Sleep             resilience.SleepFunc
}

type Client struct {
	httpClient        *http.Client
	baseURL           string
	apiKey            string
	maxRetries        int
	rateLimitCooldown time.Duration
	timeoutBackoff    time.Duration
	logger            *logging.Logger
	sleep             resilience.SleepFunc
}

// Envelope is the decoded top level of every API-Football response.
type Envelope struct {
	Errors   any             `json:"errors"`
	Response json.RawMessage `json:"response"`
}

// HasResponse reports whether the body carried a non-null response field.
func (e Envelope) HasResponse() bool {
	trimmed := bytes.TrimSpace(e.Response)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = defaultMaxRetries
	}
	cooldown := cfg.RateLimitCooldown
	if cooldown < 0 {
		cooldown = defaultRateLimitCooldown
	}
	backoff := cfg.TimeoutBackoff
	if backoff < 0 {
		backoff = defaultTimeoutBackoff
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = resilience.Sleep
	}

	return &Client{
		httpClient:        httpClient,
		baseURL:           baseURL,
		apiKey:            strings.TrimSpace(cfg.APIKey),
		maxRetries:        maxRetries,
		rateLimitCooldown: cooldown,
		timeoutBackoff:    backoff,
		logger:            logger,
		sleep:             sleep,
	}
}

// Get performs one authenticated GET against endpoint with the retry policy:
// 429 and timeouts wait and try again, every other failure is returned at
// once. Each attempt, retryable or not, uses one unit of MaxRetries, and no
// wait happens after the final attempt.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (Envelope, error) {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	ctx, span := tracer.Start(ctx, "apifootball.Client.Get")
	defer span.End()
	span.SetAttributes(attribute.String("apifootball.endpoint", endpoint))

	fullURL := c.buildURL(endpoint, params)

	var lastErr *CallError
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		env, callErr := c.attempt(ctx, endpoint, fullURL, attempt)
		if callErr == nil {
			span.SetAttributes(attribute.Int("apifootball.attempts", attempt))
			c.logger.InfoContext(ctx, "successfully fetched endpoint", "endpoint", endpoint, "attempt", attempt)
			return env, nil
		}
		if ctx.Err() != nil {
			return Envelope{}, c.fail(ctx, span, crerr.Wrapf(ctx.Err(), "fetch %s cancelled", endpoint))
		}
		if !callErr.Retryable() {
			return Envelope{}, c.fail(ctx, span, callErr)
		}
		lastErr = callErr

		wait := c.timeoutBackoff
		if errors.Is(callErr, ErrRateLimited) {
			wait = c.rateLimitCooldown
			c.logger.WarnContext(ctx, "rate limit hit",
				"endpoint", endpoint,
				"attempt", attempt,
				"max_attempts", c.maxRetries,
				"cooldown", wait,
			)
		} else {
			c.logger.WarnContext(ctx, "request timed out",
				"endpoint", endpoint,
				"attempt", attempt,
				"max_attempts", c.maxRetries,
				"backoff", wait,
			)
		}

		if attempt == c.maxRetries {
			break
		}
		if err := c.sleep(ctx, wait); err != nil {
			return Envelope{}, c.fail(ctx, span, crerr.Wrapf(err, "wait before retrying %s", endpoint))
		}
	}

	return Envelope{}, c.fail(ctx, span, &CallError{
		Endpoint:    endpoint,
		Attempt:     c.maxRetries,
		MaxAttempts: c.maxRetries,
		Kind:        ErrRetriesExhausted,
		Cause:       lastErr,
	})
}

func (c *Client) attempt(ctx context.Context, endpoint, fullURL string, attempt int) (Envelope, *CallError) {
	newErr := func(kind error, status int, detail string, cause error) *CallError {
		return &CallError{
			Endpoint:    endpoint,
			Status:      status,
			Attempt:     attempt,
			MaxAttempts: c.maxRetries,
			Kind:        kind,
			Detail:      c.redact(detail),
			Cause:       cause,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return Envelope{}, newErr(ErrTransport, 0, "build request", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) && ctx.Err() == nil {
			return Envelope{}, newErr(ErrTimeout, 0, err.Error(), nil)
		}
		return Envelope{}, newErr(ErrTransport, 0, err.Error(), nil)
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return Envelope{}, newErr(ErrRateLimited, resp.StatusCode, "", nil)
	case http.StatusUnauthorized:
		return Envelope{}, newErr(ErrUnauthorized, resp.StatusCode, "check the API key", nil)
	default:
		return Envelope{}, newErr(ErrUnexpectedStatus, resp.StatusCode, abbreviateBody(raw), nil)
	}

	if readErr != nil {
		if isTimeout(readErr) && ctx.Err() == nil {
			return Envelope{}, newErr(ErrTimeout, resp.StatusCode, "read response body: "+readErr.Error(), nil)
		}
		return Envelope{}, newErr(ErrTransport, resp.StatusCode, "read response body: "+readErr.Error(), nil)
	}

	var env Envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return Envelope{}, newErr(ErrMalformed, resp.StatusCode, "decode body: "+abbreviateBody(raw), nil)
	}
	if hasAPIErrors(env.Errors) {
		return Envelope{}, newErr(ErrAPIReported, resp.StatusCode, describeAPIErrors(env.Errors), nil)
	}
	return env, nil
}

func (c *Client) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	args := []any{"error", err}
	var callErr *CallError
	if errors.As(err, &callErr) {
		args = append(args, "endpoint", callErr.Endpoint, "attempt", callErr.Attempt, "status", callErr.Status)
	}
	c.logger.ErrorContext(ctx, "api request failed", args...)
	return err
}

func (c *Client) buildURL(endpoint string, params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	fullURL := c.baseURL + "/" + endpoint
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

func (c *Client) redact(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || c.apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

func seasonParams(leagueID, season int) map[string]string {
	return map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": strconv.Itoa(season),
	}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// hasAPIErrors treats null, "", [] and {} as "no errors". API-Football sends
// an empty array on success and an object keyed by field on failure.
func hasAPIErrors(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(typed) != ""
	case []any:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	case bool:
		return typed
	default:
		return true
	}
}

func describeAPIErrors(value any) string {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return "unprintable errors payload"
	}
	return abbreviateBody(raw)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
