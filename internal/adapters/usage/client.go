// Package usage fetches the upstream usage statistics document relayed by
// GET /api/usage.
package usage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/artamananda/portfolio/pkg/logger"
	"github.com/artamananda/portfolio/pkg/metrics"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 1 << 20
)

// Client performs one GET against a fixed upstream URL per Fetch call.
// It keeps no state between calls: no cache, no retry.
type Client struct {
	url          string
	timeout      time.Duration
	maxBodyBytes int64
	transport    http.RoundTripper
	httpClient   *http.Client
	logger       logger.Logger
}

// New builds a Client for rawURL, which must be an absolute http(s) URL.
func New(rawURL string, opts ...Option) (*Client, error) {
	const op = "usage.New"

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrInvalidURL, Err: err}
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &Error{Op: op, Kind: ErrInvalidURL, Err: fmt.Errorf("%q is not an absolute http(s) URL", rawURL)}
	}

	c := &Client{
		url:          u.String(),
		timeout:      defaultTimeout,
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       logger.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = newTransport()
	}

	// The deadline is applied per request through the context so that it also
	// covers reading the body.
	c.httpClient = &http.Client{
		Transport: otelhttp.NewTransport(c.transport),
	}
	return c, nil
}

// newTransport keeps connections to the upstream warm and honours system proxies.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// URL returns the upstream address.
func (c *Client) URL() string { return c.url }

// Fetch retrieves the upstream document and returns it re-serialized as
// compact JSON. Object key order is kept; insignificant whitespace is dropped.
// Any failure is returned as *Error.
func (c *Client) Fetch(ctx context.Context) (json.RawMessage, error) {
	start := time.Now()

	payload, err := c.fetch(ctx)
	latency := float64(time.Since(start).Milliseconds())

	if err != nil {
		outcome := "unreachable"
		var uerr *Error
		if errors.As(err, &uerr) {
			outcome = uerr.Outcome()
		}
		metrics.RecordUpstreamFetch(outcome, latency)
		c.logger.Warn(ctx, "usage fetch failed",
			logger.String("outcome", outcome),
			logger.Duration("duration", time.Since(start)),
			logger.Error(err),
		)
		return nil, err
	}

	metrics.RecordUpstreamFetch("success", latency)
	metrics.RecordUpstreamPayload(len(payload))
	c.logger.Debug(ctx, "usage fetched",
		logger.Int("bytes", len(payload)),
		logger.Duration("duration", time.Since(start)),
	)
	return payload, nil
}

func (c *Client) fetch(ctx context.Context) (json.RawMessage, error) {
	const op = "usage.Fetch"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrUnreachable, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: classify(err), Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug(ctx, "close upstream body failed", logger.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &Error{Op: op, Kind: ErrUpstreamStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, &Error{Op: op, Kind: classify(err), Status: resp.StatusCode, Err: err}
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, &Error{
			Op:     op,
			Kind:   ErrPayloadTooLarge,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("limit %d bytes", c.maxBodyBytes),
		}
	}

	if !json.Valid(body) {
		return nil, &Error{Op: op, Kind: ErrInvalidPayload, Status: resp.StatusCode}
	}
	var out bytes.Buffer
	out.Grow(len(body))
	if err := json.Compact(&out, body); err != nil {
		return nil, &Error{Op: op, Kind: ErrInvalidPayload, Status: resp.StatusCode, Err: err}
	}
	return out.Bytes(), nil
}

// classify maps a transport error onto a failure kind.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrUnreachable
}
