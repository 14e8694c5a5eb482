// Package backend fetches dashboard data from the monitoring backend's
// JSON API. It knows nothing about snapshots or rendering: it returns the
// decoded wire payloads, or a structured error classifying the failure as
// a network or decode problem.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is where the original dashboard server mounts its API.
const DefaultBaseURL = "http://localhost:5000/api"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client talks to the monitoring backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:5000/api").
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client requests against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health fetches the current health score.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.getJSON(ctx, PathHealth, &out)
	return out, err
}

// Risk fetches the current risk assessment.
func (c *Client) Risk(ctx context.Context) (RiskResponse, error) {
	var out RiskResponse
	err := c.getJSON(ctx, PathRisk, &out)
	return out, err
}

// RecentMetrics fetches the recent metrics history, newest-first.
func (c *Client) RecentMetrics(ctx context.Context) ([]MetricResponse, error) {
	var out []MetricResponse
	err := c.getJSON(ctx, PathMetrics, &out)
	return out, err
}

// Incidents fetches the recent incident list.
func (c *Client) Incidents(ctx context.Context) ([]IncidentResponse, error) {
	var out []IncidentResponse
	err := c.getJSON(ctx, PathIncidents, &out)
	return out, err
}

// FetchAll issues the four requests concurrently and waits for all of them.
// If any request fails the others are cancelled and the first error is
// returned with a nil Payload; there is no partial result.
func (c *Client) FetchAll(ctx context.Context) (*Payload, error) {
	var p Payload
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h, err := c.Health(gctx)
		p.Health = h
		return err
	})
	g.Go(func() error {
		r, err := c.Risk(gctx)
		p.Risk = r
		return err
	})
	g.Go(func() error {
		m, err := c.RecentMetrics(gctx)
		p.Metrics = m
		return err
	})
	g.Go(func() error {
		inc, err := c.Incidents(gctx)
		p.Incidents = inc
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

// getJSON performs a GET against path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Cannot build request for %s", path),
			"Check backend.url in your config")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("GET %s failed", path),
			"Check that the monitoring backend is running at "+c.baseURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Reading %s response failed", path),
			"The connection dropped mid-response; the next refresh will try again")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New(errors.ErrNetwork,
			fmt.Sprintf("GET %s returned %s", path, resp.Status),
			"Check the backend logs")
	}

	// null decodes into zero values without error
	if trimmed := strings.TrimSpace(string(body)); trimmed == "" || trimmed == "null" {
		return errors.New(errors.ErrDecode,
			fmt.Sprintf("Empty payload from %s", path),
			"The backend answered without data; check the backend logs")
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.WrapWithCode(err, errors.ErrDecode,
			fmt.Sprintf("Unexpected payload from %s", path),
			"The backend response does not match the expected schema")
	}

	c.log.Debug("GET %s ok (%d bytes, %s)", path, len(body), time.Since(start).Round(time.Millisecond))
	return nil
}
