// Package directory runs discovery queries against the remote user
// directory. Two backends are available: the directory's own HTTP search
// endpoint and a Typesense collection of indexed profiles.
package directory

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
	"github.com/maypok86/otter/v2"

	"github.com/pkordes/travel-match/backend/internal/discovery"
	"github.com/pkordes/travel-match/backend/internal/domain"
)

// Options tunes an HTTPSearcher. Zero values select the defaults.
type Options struct {
	// Timeout bounds a single attempt. Default 5s.
	Timeout time.Duration
	// Attempts is the total number of tries per search. Default 3.
	Attempts uint
	// Delay is the first backoff step. Default 200ms.
	Delay time.Duration
	// CacheTTL keeps identical queries off the wire. 0 disables the cache.
	CacheTTL time.Duration
	// HTTPClient replaces the default client; tests use it.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// HTTPSearcher calls GET {baseURL}/search with the query's named parameters.
type HTTPSearcher struct {
	baseURL  string
	client   *http.Client
	attempts uint
	delay    time.Duration
	cache    *otter.Cache[string, []domain.Candidate]
	logger   *slog.Logger
}

// NewHTTPSearcher constructs an HTTPSearcher for the directory at baseURL.
func NewHTTPSearcher(baseURL string, opts Options) *HTTPSearcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.Delay <= 0 {
		opts.Delay = 200 * time.Millisecond
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &HTTPSearcher{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   opts.HTTPClient,
		attempts: opts.Attempts,
		delay:    opts.Delay,
		logger:   opts.Logger,
	}
	if opts.CacheTTL > 0 {
		s.cache = otter.Must(&otter.Options[string, []domain.Candidate]{
			MaximumSize:      5_000,
			InitialCapacity:  128,
			ExpiryCalculator: otter.ExpiryWriting[string, []domain.Candidate](opts.CacheTTL),
		})
	}
	return s
}

// statusError is a non-2xx answer from the directory.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("directory returned %d", e.code)
	}
	return fmt.Sprintf("directory returned %d: %s", e.code, e.body)
}

// errPayload marks a 2xx answer whose body could not be decoded.
var errPayload = errors.New("unreadable directory response")

// retryable reports whether err is worth another attempt: network failures
// (including a single attempt timing out), 5xx and 429. Other 4xx answers mean
// the request itself is wrong. Once the caller's ctx is done nothing is retried.
func retryable(ctx context.Context) func(error) bool {
	return func(err error) bool {
		if ctx.Err() != nil || errors.Is(err, errPayload) {
			return false
		}
		var se *statusError
		if errors.As(err, &se) {
			return se.code >= 500 || se.code == http.StatusTooManyRequests
		}
		return true
	}
}

// Search runs q and returns the candidates in the directory's order.
// Failures of any kind wrap domain.ErrTransport.
func (s *HTTPSearcher) Search(ctx context.Context, q discovery.Query) ([]domain.Candidate, error) {
	key := q.Values().Encode()
	if s.cache != nil {
		if cached, ok := s.cache.GetIfPresent(key); ok {
			s.logger.DebugContext(ctx, "directory cache hit", "query", key)
			return cached, nil
		}
	}

	target := s.baseURL + "/search?" + key
	start := time.Now()
	var candidates []domain.Candidate

	err := retry.Do(
		func() error {
			var err error
			candidates, err = s.fetch(ctx, target)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.MaxDelay(10*s.delay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.RetryIf(retryable(ctx)),
		retry.OnRetry(func(n uint, err error) {
			s.logger.WarnContext(ctx, "retrying directory search",
				"attempt", n+1,
				"error", err,
			)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "directory search failed",
			"error", err,
			"duration", time.Since(start),
		)
		return nil, fmt.Errorf("directory.HTTPSearcher.Search: %w: %w", domain.ErrTransport, err)
	}

	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	if s.cache != nil {
		s.cache.Set(key, candidates)
	}
	return candidates, nil
}

func (s *HTTPSearcher) fetch(ctx context.Context, target string) ([]domain.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	return decodeCandidates(body)
}

// decodeCandidates accepts a bare JSON array or an object wrapping the
// array in "data".
func decodeCandidates(body []byte) ([]domain.Candidate, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if body[0] == '{' {
		var wrapped struct {
			Data []domain.Candidate `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %w", errPayload, err)
		}
		return wrapped.Data, nil
	}
	var out []domain.Candidate
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", errPayload, err)
	}
	return out, nil
}
