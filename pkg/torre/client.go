// Package torre is a rate-limited client for the Torre people search and
// bio (genome) APIs.
package torre

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/metrics"
	"github.com/dd0wney/talentgraph/pkg/profile"
)

const (
	// SearchURL is the people search endpoint.
	SearchURL = "https://search.torre.co/people/_search"
	// BioURL is the base of the genome endpoint; the username is appended.
	BioURL = "https://bio.torre.co/api/bios/"

	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 15 * time.Second
	// DefaultRateLimit is requests per second across all calls.
	DefaultRateLimit = 5.0
	// DefaultSearchLimit is the page size when a request does not set one.
	DefaultSearchLimit = 15

	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 8 << 20
)

// BreakerSettings configures the circuit breaker around upstream calls.
type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
	// HalfOpenRequests is how many probes are allowed while half-open.
	HalfOpenRequests uint32
}

// DefaultBreakerSettings opens after 5 consecutive failures for 30s.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    1,
	}
}

// Client calls the Torre APIs.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	searchURL  string
	bioURL     string
	logger     logging.Logger
	metrics    *metrics.Registry
	tracer     trace.Tracer

	breakerSettings BreakerSettings
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithSearchURL overrides the search endpoint (for testing).
func WithSearchURL(u string) ClientOption {
	return func(c *Client) { c.searchURL = u }
}

// WithBioURL overrides the genome endpoint base (for testing).
func WithBioURL(u string) ClientOption {
	return func(c *Client) { c.bioURL = u }
}

// WithRateLimit sets the request rate and burst.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, burst) }
}

// WithBreaker sets circuit breaker thresholds.
func WithBreaker(s BreakerSettings) ClientOption {
	return func(c *Client) { c.breakerSettings = s }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records upstream request counts, latency and breaker state.
func WithMetrics(m *metrics.Registry) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Torre client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:      &http.Client{Timeout: DefaultTimeout},
		limiter:         rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		searchURL:       SearchURL,
		bioURL:          BioURL,
		logger:          logging.NopLogger{},
		tracer:          otel.Tracer("github.com/dd0wney/talentgraph/pkg/torre"),
		breakerSettings: DefaultBreakerSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}

	s := c.breakerSettings
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "torre",
		MaxRequests: s.HalfOpenRequests,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// a missing profile or a caller giving up says nothing about upstream health
			return err == nil || errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				logging.Component(name),
				logging.String("from", from.String()),
				logging.String("to", to.String()))
			if c.metrics != nil {
				c.metrics.SetBreakerState(to.String())
			}
		},
	})
	return c
}

// BreakerState reports the circuit breaker state ("closed", "half-open", "open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// SearchRaw runs a people search and returns the upstream body unchanged.
func (c *Client) SearchRaw(ctx context.Context, req SearchRequest) ([]byte, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultSearchLimit
	}
	ctx, span := c.tracer.Start(ctx, "torre.Search",
		trace.WithAttributes(
			attribute.String("torre.query", req.Query),
			attribute.Int("torre.limit", req.Limit),
			attribute.Int("torre.offset", req.Offset),
		),
	)
	defer span.End()

	payload, err := json.Marshal(searchBody{Query: req.Query, Size: req.Limit, Offset: req.Offset})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, "search", func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

// Search runs a people search and decodes the result page.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	body, err := c.SearchRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrUpstream, err)
	}
	return &resp, nil
}

// GenomeRaw fetches a profile document and returns the upstream body unchanged.
func (c *Client) GenomeRaw(ctx context.Context, username string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "torre.Genome",
		trace.WithAttributes(attribute.String("torre.username", username)),
	)
	defer span.End()

	target := c.bioURL + url.PathEscape(username)
	body, err := c.do(ctx, "genome", func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("%w: %s", err, username)
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}
	return body, nil
}

// Genome fetches and decodes a profile document.
func (c *Client) Genome(ctx context.Context, username string) (*profile.Genome, error) {
	body, err := c.GenomeRaw(ctx, username)
	if err != nil {
		return nil, err
	}
	g, err := profile.DecodeGenome(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return g, nil
}

// do waits on the limiter and runs one request through the breaker.
func (c *Client) do(ctx context.Context, endpoint string, build func(context.Context) (*http.Request, error)) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	status := "error"
	defer func() {
		if c.metrics != nil {
			c.metrics.RecordUpstreamRequest(endpoint, status, time.Since(start))
		}
	}()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		defer resp.Body.Close()
		status = strconv.Itoa(resp.StatusCode)

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			status = "breaker_open"
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}
	return result.([]byte), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
