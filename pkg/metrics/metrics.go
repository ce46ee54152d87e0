package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequestsTotal = prometheus.NewDesc(
		"release_calendar_api_requests_total",
		"Total number of requests against the GitHub API",
		[]string{"repo"},
		nil,
	)

	apiRequestDuration = prometheus.NewDesc(
		"release_calendar_api_request_duration_seconds",
		"Duration of the last milestone request against the GitHub API",
		[]string{"repo"},
		nil,
	)

	apiRateLimitRemaining = prometheus.NewDesc(
		"release_calendar_api_ratelimit_remaining",
		"Number of remaining GitHub API requests as reported by the last response",
		nil,
		nil,
	)

	milestonesCount = prometheus.NewDesc(
		"release_calendar_milestones",
		"Number of milestones per pipeline stage (fetched, undated, retained)",
		[]string{"repo", "stage"},
		nil,
	)

	tableRows = prometheus.NewDesc(
		"release_calendar_rows",
		"Number of data rows in the rendered release calendar",
		[]string{"repo"},
		nil,
	)

	lastSuccess = prometheus.NewDesc(
		"release_calendar_last_success_timestamp_seconds",
		"UNIX timestamp of the last successfully rendered release calendar",
		[]string{"repo"},
		nil,
	)
)
