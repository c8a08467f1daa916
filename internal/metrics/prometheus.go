// Package metrics exposes a ServiceStatus to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/darrylwest/service-uptime/pkg/status"
	"github.com/darrylwest/service-uptime/pkg/version"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "service"

// StatusCollector reads a ServiceStatus on every scrape. It holds no state
// of its own, so the values always match what /status reports.
type StatusCollector struct {
	status status.ServiceStatus

	uptime    *prometheus.Desc
	started   *prometheus.Desc
	errors    *prometheus.Desc
	access    *prometheus.Desc
	buildInfo *prometheus.Desc
}

// NewStatusCollector creates a collector for st. Every metric carries a
// constant "service" label set to serviceName.
func NewStatusCollector(st status.ServiceStatus, namespace, serviceName string) *StatusCollector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	labels := prometheus.Labels{"service": serviceName}

	return &StatusCollector{
		status: st,
		uptime: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "uptime_seconds"),
			"Whole seconds since the service started",
			nil, labels),
		started: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "start_time_seconds"),
			"Unix time the service started",
			nil, labels),
		errors: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "errors_total"),
			"Errors recorded by the service",
			nil, labels),
		access: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "access_total"),
			"Accesses recorded by the service",
			nil, labels),
		buildInfo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "build_info"),
			"Build metadata, always 1",
			[]string{"version", "commit", "go_version"}, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *StatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.uptime
	ch <- c.started
	ch <- c.errors
	ch <- c.access
	ch <- c.buildInfo
}

// Collect implements prometheus.Collector.
//
// errors and access are exported as counters even though Counter.Decr
// exists; callers that decrement should read them as gauges.
func (c *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.status.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, float64(snap.UptimeSeconds))
	ch <- prometheus.MustNewConstMetric(c.started, prometheus.GaugeValue, float64(snap.StartedAt.Unix()))
	ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(snap.Errors))
	ch <- prometheus.MustNewConstMetric(c.access, prometheus.CounterValue, float64(snap.Access))
	ch <- prometheus.MustNewConstMetric(c.buildInfo, prometheus.GaugeValue, 1,
		version.Version, version.Commit, version.GoVersion)
}

// NewRegistry returns a registry holding the status collector plus the Go
// runtime and process collectors.
func NewRegistry(c *StatusCollector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := Register(reg, c); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds the status collector and the runtime collectors to reg.
func Register(reg prometheus.Registerer, c *StatusCollector) error {
	for _, col := range []prometheus.Collector{
		c,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}
