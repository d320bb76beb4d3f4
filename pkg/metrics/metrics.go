// Package metrics collects run counters in a private Prometheus registry and
// writes them in the node exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/younsl/rightsizer/internal/models"
)

const namespace = "rightsizer"

// Metrics holds the collectors of one analysis run
type Metrics struct {
	registry *prometheus.Registry

	// InstancesAnalyzed counts instances that produced a report row
	InstancesAnalyzed prometheus.Counter

	// InstancesSkipped counts instances excluded from the report.
	// Labels: reason (no_data, error)
	InstancesSkipped *prometheus.CounterVec

	// Recommendations counts findings emitted by the engine.
	// Labels: kind (underutilized, downgrade, idle)
	Recommendations *prometheus.CounterVec

	// PricingLookups counts Pricing API lookups.
	// Labels: result (success, failure, cache)
	PricingLookups *prometheus.CounterVec

	// PotentialHourlySavings is the sum of the best downgrade saving per instance
	PotentialHourlySavings prometheus.Gauge

	// RunDuration is the wall time of the last run
	RunDuration prometheus.Gauge

	// LastRunTimestamp is the Unix time the last run finished
	LastRunTimestamp prometheus.Gauge
}

// New creates the collectors and registers them in a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		InstancesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_analyzed_total",
			Help:      "Number of instances included in the report",
		}),
		InstancesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_skipped_total",
			Help:      "Number of instances excluded from the report",
		}, []string{"reason"}),
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Number of recommendation findings",
		}, []string{"kind"}),
		PricingLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_lookups_total",
			Help:      "Number of on-demand price lookups",
		}, []string{"result"}),
		PotentialHourlySavings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "potential_hourly_savings_dollars",
			Help:      "Sum of the largest suggested downgrade saving per instance",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last analysis run",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last analysis run finished",
		}),
	}

	m.registry.MustRegister(
		m.InstancesAnalyzed,
		m.InstancesSkipped,
		m.Recommendations,
		m.PricingLookups,
		m.PotentialHourlySavings,
		m.RunDuration,
		m.LastRunTimestamp,
	)
	return m
}

// Registry returns the private registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReport records the rows, skips and findings of a report
func (m *Metrics) ObserveReport(report *models.Report) {
	if report == nil {
		return
	}

	var savings float64
	for _, row := range report.Rows {
		m.InstancesAnalyzed.Inc()

		var best float64
		for _, f := range row.Recommendation.Findings {
			m.Recommendations.WithLabelValues(string(f.Kind)).Inc()
			if f.Kind == models.FindingDowngrade && f.HourlySavings > best {
				best = f.HourlySavings
			}
		}
		savings += best
	}
	m.PotentialHourlySavings.Set(savings)

	for _, s := range report.Skipped {
		m.InstancesSkipped.WithLabelValues(string(s.Reason)).Inc()
	}
}

// ObservePricing adds lookup totals keyed by result
func (m *Metrics) ObservePricing(totals map[string]int) {
	for result, n := range totals {
		m.PricingLookups.WithLabelValues(result).Add(float64(n))
	}
}

// ObserveRun records the duration and completion time of a run
func (m *Metrics) ObserveRun(duration time.Duration, finished time.Time) {
	m.RunDuration.Set(duration.Seconds())
	m.LastRunTimestamp.Set(float64(finished.Unix()))
}

// WriteTextfile writes every collected metric to path
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
