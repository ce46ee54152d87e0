// SPDX-FileCopyrightText: 2023 Christoph Mewes
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// maxErrorBody limits how much of a failed response ends up in a StatusError.
const maxErrorBody = 512

func milestonesURL(baseURL string, owner string, name string) string {
	return fmt.Sprintf(
		"%s/repos/%s/%s/milestones?state=all&sort=due_on&direction=desc",
		strings.TrimSuffix(baseURL, "/"),
		url.PathEscape(owner),
		url.PathEscape(name),
	)
}

// ListMilestones fetches all milestones (open and closed) of the given
// repository, sorted by due date descending, and returns the raw response
// body. Only the first page is requested.
func (c *Client) ListMilestones(ctx context.Context, owner string, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, milestonesURL(c.baseURL, owner, name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch milestones: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	remaining := rateLimitRemaining(resp.Header)

	c.countRequest(owner, name, duration, remaining)

	c.log.WithFields(logrus.Fields{
		"owner":     owner,
		"name":      name,
		"status":    resp.StatusCode,
		"bytes":     len(body),
		"remaining": remaining,
		"duration":  duration.String(),
	}).Debugf("ListMilestones()")

	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := strings.TrimSpace(string(body))
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}

		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       excerpt,
		}
	}

	return body, nil
}

func rateLimitRemaining(header http.Header) int {
	value := header.Get("X-RateLimit-Remaining")
	if value == "" {
		return -1
	}

	remaining, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return remaining
}
