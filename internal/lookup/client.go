// Package lookup calls the public postal, IFSC and QR services. Each
// operation validates its input before any request is sent, issues exactly
// one request and never retries.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInput means the input was rejected locally; nothing was sent.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the service answered but had no matching record.
	ErrNotFound = errors.New("not found")
	// ErrUpstream covers network failures, bad payloads and open breakers.
	ErrUpstream = errors.New("upstream failure")
)

// Default service endpoints.
const (
	DefaultPostalBaseURL = "https://api.postalpincode.in"
	DefaultIFSCBaseURL   = "https://ifsc.razorpay.com"
	DefaultQRBaseURL     = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultTimeout       = 10 * time.Second
)

const maxBodyBytes = 4 << 20

// BreakerSettings configures the circuit breaker in front of each service.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings trips after 5 requests with at least 60% failures.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// Options configures a Client. Empty fields take the package defaults.
type Options struct {
	PostalBaseURL string
	IFSCBaseURL   string
	QRBaseURL     string
	Timeout       time.Duration
	CacheSize     int
	Breaker       BreakerSettings
	HTTPClient    *http.Client
	Logger        *zap.Logger
}

// Client performs lookups against the configured services.
type Client struct {
	opts   Options
	http   *http.Client
	cache  *Cache[[]byte]
	logger *zap.Logger

	postal *gobreaker.CircuitBreaker
	ifsc   *gobreaker.CircuitBreaker
	qr     *gobreaker.CircuitBreaker
}

// NewClient creates a Client with one breaker per service.
func NewClient(opts Options) *Client {
	if opts.PostalBaseURL == "" {
		opts.PostalBaseURL = DefaultPostalBaseURL
	}
	if opts.IFSCBaseURL == "" {
		opts.IFSCBaseURL = DefaultIFSCBaseURL
	}
	if opts.QRBaseURL == "" {
		opts.QRBaseURL = DefaultQRBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Breaker == (BreakerSettings{}) {
		opts.Breaker = DefaultBreakerSettings()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	c := &Client{
		opts:   opts,
		http:   hc,
		cache:  NewCache[[]byte](opts.CacheSize),
		logger: opts.Logger,
	}
	c.postal = c.newBreaker("postal")
	c.ifsc = c.newBreaker("ifsc")
	c.qr = c.newBreaker("qr")
	return c
}

func (c *Client) newBreaker(name string) *gobreaker.CircuitBreaker {
	s := c.opts.Breaker
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				zap.String("service", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// BreakerState reports the state of the named service breaker
// ("postal", "ifsc" or "qr").
func (c *Client) BreakerState(service string) (gobreaker.State, bool) {
	switch service {
	case "postal":
		return c.postal.State(), true
	case "ifsc":
		return c.ifsc.State(), true
	case "qr":
		return c.qr.State(), true
	}
	return gobreaker.StateClosed, false
}

// statusError is a response the service answered with a non-2xx status.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d", e.code)
}

// get fetches url through cb. Server errors and transport failures count
// against the breaker; other non-2xx statuses are returned as *statusError
// wrapped in ErrUpstream without tripping it. Successful bodies are cached.
func (c *Client) get(ctx context.Context, cb *gobreaker.CircuitBreaker, url string) ([]byte, error) {
	if body, ok := c.cache.Get(url); ok {
		c.logger.Debug("lookup cache hit", zap.String("url", url))
		return body, nil
	}

	reqID := uuid.NewString()
	start := time.Now()
	var clientErr *statusError
	out, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Request-ID", reqID)
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &statusError{code: resp.StatusCode}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			clientErr = &statusError{code: resp.StatusCode}
			return nil, nil
		}
		return body, nil
	})

	fields := []zap.Field{
		zap.String("request_id", reqID),
		zap.String("service", cb.Name()),
		zap.String("url", url),
		zap.Duration("elapsed", time.Since(start)),
	}
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.logger.Warn("lookup rejected by breaker", fields...)
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, cb.Name(), err)
	case err != nil:
		c.logger.Error("lookup failed", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, cb.Name(), err)
	case clientErr != nil:
		c.logger.Debug("lookup returned client error", append(fields, zap.Int("status", clientErr.code))...)
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, cb.Name(), clientErr)
	}

	body := out.([]byte)
	c.logger.Debug("lookup ok", append(fields, zap.Int("bytes", len(body)))...)
	c.cache.Set(url, body)
	return body, nil
}

// answered reports whether err carries a non-2xx response from the service.
func answered(err error) bool {
	var se *statusError
	return errors.As(err, &se)
}
