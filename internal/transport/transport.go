// Package transport executes requests against the monitoring service
// endpoint and decodes the vendor response envelope.
//
// Idempotent read actions are retried on network failure with
// exponential backoff. Mutating actions (device control, login) are
// never retried automatically; sending a control command twice is
// unsafe.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/arnoutzw/Anenji-smartess/internal/request"
)

const (
	// DefaultBaseURL is the vendor's public endpoint; every action is
	// routed through this single path.
	DefaultBaseURL = "http://android.shinemonitor.com/public/"

	DefaultTimeout    = 30 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = 1 * time.Second

	maxBackoffInterval = 30 * time.Second
)

var (
	// ErrNetwork indicates a transport-layer failure: connection error,
	// or a non-2xx response whose body is not a vendor envelope.
	ErrNetwork = errors.New("network failure")

	// ErrTimeout indicates the per-attempt deadline expired.
	ErrTimeout = fmt.Errorf("request timed out: %w", ErrNetwork)
)

// Config configures a Transport. Zero values fall back to the vendor
// defaults.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Retries is the number of extra attempts for idempotent reads
	// after the initial one. nil means DefaultRetries; an explicit
	// zero disables retrying.
	Retries    *uint
	RetryDelay time.Duration

	// HTTPClient overrides the underlying client, e.g. with a caching
	// transport for the public catalog endpoints.
	HTTPClient *http.Client
}

// Transport executes signed requests with a per-attempt timeout and a
// retry policy for idempotent reads.
type Transport struct {
	baseURL    string
	timeout    time.Duration
	retries    uint
	retryDelay time.Duration
	client     *http.Client
}

// New creates a Transport from cfg.
func New(cfg Config) (*Transport, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", cfg.BaseURL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	retries := uint(DefaultRetries)
	if cfg.Retries != nil {
		retries = *cfg.Retries
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Transport{
		baseURL:    baseURL,
		timeout:    timeout,
		retries:    retries,
		retryDelay: retryDelay,
		client:     client,
	}, nil
}

// Execute issues req as a GET with its parameters as the query string.
// Read actions are retried on ErrNetwork/ErrTimeout; mutating actions
// fail on the first transport error.
func (t *Transport) Execute(ctx context.Context, req *request.SignedRequest) (*Envelope, error) {
	requestID := uuid.NewString()
	query := req.Values().Encode()

	op := func() (*Envelope, error) {
		if err := ctx.Err(); err != nil {
			return nil, backoff.Permanent(err)
		}
		return t.roundTrip(ctx, requestID, http.MethodGet, query, nil)
	}

	if req.Mutating() {
		env, err := op()
		if err != nil {
			log.Debug().
				Err(err).
				Str("request_id", requestID).
				Str("action", req.Action).
				Msg("mutating action failed, not retrying")
		}
		return env, err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = t.retryDelay
	expo.RandomizationFactor = 0
	expo.Multiplier = 2
	expo.MaxInterval = maxBackoffInterval

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(t.retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().
				Err(err).
				Str("request_id", requestID).
				Str("action", req.Action).
				Dur("next_retry", next).
				Msg("request failed, will retry")
		}),
	)
}

// Login posts the form-encoded login body. Login is authenticated by
// credentials rather than by signature and is never retried.
func (t *Transport) Login(ctx context.Context, form url.Values) (*Envelope, error) {
	requestID := uuid.NewString()
	return t.roundTrip(ctx, requestID, http.MethodPost, "", form)
}

func (t *Transport) roundTrip(ctx context.Context, requestID, method, query string, form url.Values) (*Envelope, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	endpoint := t.baseURL
	var body io.Reader
	if method == http.MethodGet {
		endpoint = endpoint + "?" + query
	} else {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	started := time.Now()

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Caller cancellation is not a transport failure.
			return nil, ctx.Err()
		}
		return nil, classifyNetError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyNetError(err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// A failure envelope still decodes; a body that is not an
		// envelope at all is a transport failure.
		return nil, fmt.Errorf("%w: status %d with unparsable body", ErrNetwork, resp.StatusCode)
	}

	log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("err", env.Err).
		Dur("duration", time.Since(started)).
		Msg("api response")

	return &env, nil
}

func classifyNetError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
