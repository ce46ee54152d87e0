package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StageFetched  = "fetched"
	StageUndated  = "undated"
	StageRetained = "retained"
)

// APIStats is implemented by the API client.
type APIStats interface {
	GetRequestCounts() map[string]int
	GetRequestDurations() map[string]time.Duration
	GetRemainingRateLimit() int
}

// Stats are the results of a single run.
type Stats struct {
	Fetched    int
	Undated    int
	Retained   int
	Rows       int
	FinishedAt time.Time
}

type Collector struct {
	repo  string
	api   APIStats
	stats *Stats
}

func NewCollector(repo string, api APIStats, stats *Stats) *Collector {
	return &Collector{
		repo:  repo,
		api:   api,
		stats: stats,
	}
}

// Describe lists all descriptors up front, Collect skips metrics whose
// values are not known yet.
func (mc *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- apiRequestsTotal
	ch <- apiRequestDuration
	ch <- apiRateLimitRemaining
	ch <- milestonesCount
	ch <- tableRows
	ch <- lastSuccess
}

func (mc *Collector) Collect(ch chan<- prometheus.Metric) {
	requestCounts := mc.api.GetRequestCounts()
	durations := mc.api.GetRequestDurations()

	ch <- prometheus.MustNewConstMetric(apiRequestsTotal, prometheus.CounterValue, float64(requestCounts[mc.repo]), mc.repo)

	if duration, ok := durations[mc.repo]; ok {
		ch <- prometheus.MustNewConstMetric(apiRequestDuration, prometheus.GaugeValue, duration.Seconds(), mc.repo)
	}

	if remaining := mc.api.GetRemainingRateLimit(); remaining >= 0 {
		ch <- prometheus.MustNewConstMetric(apiRateLimitRemaining, prometheus.GaugeValue, float64(remaining))
	}

	ch <- prometheus.MustNewConstMetric(milestonesCount, prometheus.GaugeValue, float64(mc.stats.Fetched), mc.repo, StageFetched)
	ch <- prometheus.MustNewConstMetric(milestonesCount, prometheus.GaugeValue, float64(mc.stats.Undated), mc.repo, StageUndated)
	ch <- prometheus.MustNewConstMetric(milestonesCount, prometheus.GaugeValue, float64(mc.stats.Retained), mc.repo, StageRetained)
	ch <- prometheus.MustNewConstMetric(tableRows, prometheus.GaugeValue, float64(mc.stats.Rows), mc.repo)

	if !mc.stats.FinishedAt.IsZero() {
		ch <- prometheus.MustNewConstMetric(lastSuccess, prometheus.GaugeValue, float64(mc.stats.FinishedAt.Unix()), mc.repo)
	}
}

// WriteTextfile writes the collector's metrics in the text exposition format,
// suitable for node_exporter's textfile collector. The file is replaced
// atomically.
func WriteTextfile(filename string, collector prometheus.Collector) error {
	registry := prometheus.NewRegistry()

	if err := registry.Register(collector); err != nil {
		return fmt.Errorf("failed to register collector: %w", err)
	}

	if err := prometheus.WriteToTextfile(filename, registry); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return nil
}
