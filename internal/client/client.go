package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"venuelink/internal/auth"
	"venuelink/internal/lib/api/apierror"
	"venuelink/internal/lib/logger/sl"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout caps every attempt of an outgoing request.
	DefaultTimeout = 10 * time.Second

	// MaxRetryAttempts is the number of retries after the initial attempt.
	MaxRetryAttempts = 3

	// RetryBaseDelay is the backoff unit: retry n (0-indexed) waits
	// RetryBaseDelay << n before resubmission.
	RetryBaseDelay = 1 * time.Second
)

// retryableStatuses are the only HTTP statuses eligible for retry.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Options configures a Client. Zero durations and counts fall back to
// the package defaults above.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	Tokens         auth.TokenSource
	// OnAuthFailure fires once per normalized authentication error. It is
	// the single cross-cutting side effect of the error path (forced
	// sign-out upstream).
	OnAuthFailure func()
	HTTPClient    *http.Client
}

// Client is the VenueLink API client. Every request passes through the
// same chain: retry (outermost, sees the pristine request) -> token
// injection -> raw transport -> error normalization.
type Client struct {
	log            *slog.Logger
	http           *http.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	tokens         auth.TokenSource
	onAuthFailure  func()

	// sleep is swapped in tests to observe backoff without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(log *slog.Logger, opts Options) (*Client, error) {
	const op = "client.New"

	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%s: base URL is required", op)
	}

	c := &Client{
		log:            log,
		http:           opts.HTTPClient,
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		timeout:        opts.Timeout,
		maxRetries:     opts.MaxRetries,
		retryBaseDelay: opts.RetryBaseDelay,
		tokens:         opts.Tokens,
		onAuthFailure:  opts.OnAuthFailure,
		sleep:          sleepCtx,
	}

	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.maxRetries == 0 {
		c.maxRetries = MaxRetryAttempts
	}
	if c.retryBaseDelay <= 0 {
		c.retryBaseDelay = RetryBaseDelay
	}

	return c, nil
}

// errorBody is the backend error envelope: {error, code, field?}.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// do performs one logical API call with retries, returning a normalized
// *apierror.Error on failure. body is marshaled once and resent on every
// attempt; out, when non-nil, receives the decoded 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	const op = "client.do"

	log := c.log.With(
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
	)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
	}

	// Mutations carry an Idempotency-Key so retried POST/PATCH/DELETE are
	// safe to resubmit. Generated once per logical request and reused
	// across attempts.
	var idempotencyKey string
	if method != http.MethodGet {
		idempotencyKey = uuid.NewString()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr *apierror.Error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryBaseDelay << (attempt - 1)
			log.Debug("retrying request",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
			)

			if err := c.sleep(ctx, delay); err != nil {
				return lastErr
			}
		}

		apiErr, done := c.attempt(ctx, method, endpoint, idempotencyKey, payload, out)
		if done {
			return nil
		}

		lastErr = apiErr

		if !retryable(apiErr) {
			break
		}
	}

	if lastErr.Code == apierror.CodeAuthentication && c.onAuthFailure != nil {
		c.onAuthFailure()
	}

	log.Error("request failed", sl.Err(lastErr))

	return lastErr
}

// attempt runs a single HTTP exchange. done is true on success.
func (c *Client) attempt(ctx context.Context, method, endpoint, idempotencyKey string, payload []byte, out any) (apiErr *apierror.Error, done bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, endpoint, reqBody)
	if err != nil {
		return apierror.Network(), false
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(attemptCtx)
		if err != nil {
			return apierror.Network(), false
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return apierror.Timeout(), false
		}

		return apierror.Network(), false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			return nil, true
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			// Malformed 2xx bodies surface as Unknown so corrupted data is
			// never partially rendered.
			return apierror.Unknown(resp.StatusCode), false
		}

		return nil, true
	}

	var body errorBody
	json.NewDecoder(resp.Body).Decode(&body) //nolint:errcheck

	return apierror.FromStatus(resp.StatusCode, body.Error, body.Field), false
}

func retryable(err *apierror.Error) bool {
	if err.Code == apierror.CodeNetwork || err.Code == apierror.CodeTimeout {
		return true
	}

	return retryableStatuses[err.StatusCode]
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
