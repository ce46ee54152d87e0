// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultUserAgent = "release_calendar"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	log        logrus.FieldLogger
	requests   map[string]int
	durations  map[string]time.Duration
	remaining  int
}

type Option func(*Client)

// WithBaseURL points the client at a different API root, e.g. a GitHub
// Enterprise installation or a test server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient returns an unauthenticated REST client. The default HTTP client
// has no timeout; callers bound requests via their context.
func NewClient(log logrus.FieldLogger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		log:        log,
		requests:   map[string]int{},
		durations:  map[string]time.Duration{},
		remaining:  -1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetRemainingRateLimit returns the last X-RateLimit-Remaining value seen,
// or -1 if no response carried the header yet.
func (c *Client) GetRemainingRateLimit() int {
	return c.remaining
}

func (c *Client) GetRequestCounts() map[string]int {
	return c.requests
}

func (c *Client) GetRequestDurations() map[string]time.Duration {
	return c.durations
}

func (c *Client) countRequest(owner string, name string, duration time.Duration, remaining int) {
	key := fmt.Sprintf("%s/%s", owner, name)

	val := c.requests[key]
	c.requests[key] = val + 1

	c.durations[key] = duration

	if remaining >= 0 {
		c.remaining = remaining
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected response status %s", e.Status)
	}

	return fmt.Sprintf("unexpected response status %s: %s", e.Status, e.Body)
}
