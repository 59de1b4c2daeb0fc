// Package metrics collects Prometheus metrics for breakfast orders.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	apperrors "github.com/agbru/breakfast/internal/errors"
	"github.com/agbru/breakfast/internal/sysmon"
)

// Status label values.
const (
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// Collector records order metrics into its own registry, so independent runs
// (and tests) never share state.
type Collector struct {
	registry      *prometheus.Registry
	tasksSettled  *prometheus.CounterVec
	taskDelay     *prometheus.HistogramVec
	orderDuration prometheus.Histogram
	ordersTotal   prometheus.Counter
	hostCPU       prometheus.Gauge
	hostMemory    prometheus.Gauge
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		tasksSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breakfast_tasks_settled_total",
			Help: "Number of settled kitchen tasks by task and status.",
		}, []string{"task", "status"}),
		taskDelay: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "breakfast_task_delay_seconds",
			Help:    "Drawn delay of kitchen tasks.",
			Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 5},
		}, []string{"task"}),
		orderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "breakfast_order_duration_seconds",
			Help:    "Wall-clock time from launching an order to its last settle.",
			Buckets: prometheus.LinearBuckets(0.5, 0.5, 10),
		}),
		ordersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breakfast_orders_total",
			Help: "Number of completed orders.",
		}),
		hostCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "breakfast_host_cpu_percent",
			Help: "Host CPU usage sampled at the end of the order.",
		}),
		hostMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "breakfast_host_memory_percent",
			Help: "Host memory usage sampled at the end of the order.",
		}),
	}
	c.registry.MustRegister(c.tasksSettled, c.taskDelay, c.orderDuration, c.ordersTotal, c.hostCPU, c.hostMemory)
	return c
}

// RecordSettle counts one settled task and observes its drawn delay.
func (c *Collector) RecordSettle(task string, ok bool, delay time.Duration) {
	status := StatusReady
	if !ok {
		status = StatusFailed
	}
	c.tasksSettled.WithLabelValues(task, status).Inc()
	c.taskDelay.WithLabelValues(task).Observe(delay.Seconds())
}

// RecordOrder observes the duration of a complete order.
func (c *Collector) RecordOrder(elapsed time.Duration) {
	c.ordersTotal.Inc()
	c.orderDuration.Observe(elapsed.Seconds())
}

// RecordHost sets the host load gauges.
func (c *Collector) RecordHost(s sysmon.Snapshot) {
	c.hostCPU.Set(s.CPUPercent)
	c.hostMemory.Set(s.MemPercent)
}

// Registry exposes the underlying registry, e.g. for promhttp.HandlerFor.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteText writes every metric in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return apperrors.WrapError(err, "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return apperrors.WrapError(err, "encode %s", mf.GetName())
		}
	}
	return nil
}
