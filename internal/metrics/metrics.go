// Package metrics records how a summary run went, for node_exporter's
// textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "swift"

// RunMetrics holds the gauges of one summary run
type RunMetrics struct {
	registry *prometheus.Registry

	hosts       *prometheus.GaugeVec
	devices     *prometheus.GaugeVec
	conflicts   *prometheus.GaugeVec
	lastSuccess prometheus.Gauge
	duration    prometheus.Gauge
}

// NewRunMetrics creates the gauges on a private registry
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		hosts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring_summary",
			Name:      "hosts",
			Help:      "Distinct hosts with at least one weighted device.",
		}, []string{"ring"}),
		devices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring_summary",
			Name:      "devices",
			Help:      "Builder device slots by state (active, inactive, hole).",
		}, []string{"ring", "state"}),
		conflicts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring_summary",
			Name:      "port_conflicts",
			Help:      "Devices whose port differs from an earlier device of the same host.",
		}, []string{"ring"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring_summary",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the summary file was last written.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring_summary",
			Name:      "duration_seconds",
			Help:      "Duration of the last summary run.",
		}),
	}

	m.registry.MustRegister(m.hosts, m.devices, m.conflicts, m.lastSuccess, m.duration)
	return m
}

// RingCounts are the per ring numbers recorded after aggregation
type RingCounts struct {
	Hosts         int
	Active        int
	Inactive      int
	Holes         int
	PortConflicts int
}

// ObserveRing records the counts of one ring
func (m *RunMetrics) ObserveRing(ring string, c RingCounts) {
	m.hosts.WithLabelValues(ring).Set(float64(c.Hosts))
	m.devices.WithLabelValues(ring, "active").Set(float64(c.Active))
	m.devices.WithLabelValues(ring, "inactive").Set(float64(c.Inactive))
	m.devices.WithLabelValues(ring, "hole").Set(float64(c.Holes))
	m.conflicts.WithLabelValues(ring).Set(float64(c.PortConflicts))
}

// ObserveSuccess records a completed run
func (m *RunMetrics) ObserveSuccess(finished time.Time, took time.Duration) {
	m.lastSuccess.Set(float64(finished.UnixNano()) / 1e9)
	m.duration.Set(took.Seconds())
}

// Gatherer exposes the registry
func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in text exposition format. The file is
// written to a temp file and renamed, so the collector never reads a
// partial file.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
