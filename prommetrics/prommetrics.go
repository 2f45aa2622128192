// Package prommetrics exports colsaw store metrics to Prometheus.
package prommetrics

import (
	"time"

	"github.com/hupe1980/colsaw"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements colsaw.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	rows      *prometheus.CounterVec
	columns   *prometheus.HistogramVec
}

var _ colsaw.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. A nil reg
// uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "colsaw_operation_latency_seconds",
			Help:    "Latency of store operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "colsaw_operations_total",
			Help: "Store operations by kind and outcome",
		}, []string{"op", "status"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "colsaw_rows_total",
			Help: "Rows saved or loaded",
		}, []string{"op"}),
		columns: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "colsaw_table_columns",
			Help:    "Column count of saved and loaded tables",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"op"}),
	}
	for _, m := range []prometheus.Collector{c.opLatency, c.ops, c.rows, c.columns} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is New that panics on registration errors.
func MustNew(reg prometheus.Registerer) *Collector {
	c, err := New(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *Collector) record(op string, d time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues(op, s).Observe(d.Seconds())
	c.ops.WithLabelValues(op, s).Inc()
}

// RecordSave implements colsaw.MetricsCollector.
func (c *Collector) RecordSave(rows, columns int, d time.Duration, err error) {
	c.record("save", d, err)
	if err == nil {
		c.rows.WithLabelValues("save").Add(float64(rows))
		c.columns.WithLabelValues("save").Observe(float64(columns))
	}
}

// RecordLoad implements colsaw.MetricsCollector.
func (c *Collector) RecordLoad(rows, columns int, d time.Duration, err error) {
	c.record("load", d, err)
	if err == nil {
		c.rows.WithLabelValues("load").Add(float64(rows))
		c.columns.WithLabelValues("load").Observe(float64(columns))
	}
}

// RecordDrop implements colsaw.MetricsCollector.
func (c *Collector) RecordDrop(d time.Duration, err error) {
	c.record("drop", d, err)
}
