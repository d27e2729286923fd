// Package account posts finished signups to the account subsystem.
package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Client calls POST {baseURL}/register.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 10s-timeout client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithRetry sets the attempt count and first backoff step.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.logger = l } }

// NewClient constructs a Client for the account subsystem at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
		delay:    250 * time.Millisecond,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.attempts == 0 {
		c.attempts = 1
	}
	return c
}

// errorBody is the account subsystem's failure payload. Both a bare string
// and the {code, message} object shape are accepted.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

func (b errorBody) message() string {
	if len(b.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Error, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b.Error, &obj); err == nil {
		return obj.Message
	}
	return ""
}

// upstreamError is a 5xx or 429 answer; those are retried.
type upstreamError struct{ code int }

func (e *upstreamError) Error() string { return fmt.Sprintf("account service returned %d", e.code) }

// Register creates the account. A 4xx answer is a rejection of the payload
// and wraps domain.ErrValidation with the upstream message; network failures
// and 5xx answers are retried and finally wrap domain.ErrTransport.
//
// Register is retried only on failures where the upstream cannot have
// created the account: connection errors before a response and 5xx answers.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.RegistrationResult, error) {
	payload, err := json.Marshal(reg)
	if err != nil {
		return domain.RegistrationResult{}, fmt.Errorf("account.Client.Register: marshal: %w", err)
	}

	var (
		result   domain.RegistrationResult
		rejected error
	)
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", bytes.NewReader(payload))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if err != nil {
				return err
			}

			switch {
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				if err := json.Unmarshal(body, &result); err != nil {
					return retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
				}
				return nil
			case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
				return &upstreamError{code: resp.StatusCode}
			default:
				var eb errorBody
				_ = json.Unmarshal(body, &eb)
				msg := eb.message()
				if msg == "" {
					msg = fmt.Sprintf("registration rejected (%d)", resp.StatusCode)
				}
				rejected = fmt.Errorf("%w: %s", domain.ErrValidation, msg)
				return retry.Unrecoverable(rejected)
			}
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(8*c.delay),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			c.logger.WarnContext(ctx, "retrying account registration",
				"attempt", n+1,
				"error", err,
			)
		}),
		retry.LastErrorOnly(true),
	)
	if rejected != nil {
		return domain.RegistrationResult{}, fmt.Errorf("account.Client.Register: %w", rejected)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.RegistrationResult{}, fmt.Errorf("account.Client.Register: %w", err)
		}
		return domain.RegistrationResult{}, fmt.Errorf("account.Client.Register: %w: %w", domain.ErrTransport, err)
	}
	return result, nil
}
