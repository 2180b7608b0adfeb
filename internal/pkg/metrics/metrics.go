// Package metrics exposes the commit engine counters to prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns its registry so tests and multiple servers never collide on
// the default one. A nil *Collector records nothing.
type Collector struct {
	registry       *prometheus.Registry
	commits        *prometheus.CounterVec
	commitDuration *prometheus.HistogramVec
	staged         *prometheus.CounterVec
	published      *prometheus.CounterVec
}

// New registers the commit metrics under namespace
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Transaction commits by protocol and HTTP status of the outcome.",
		}, []string{"protocol", "status"}),
		commitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "commit_duration_seconds",
			Help:      "Time spent inside the commit database transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"protocol"}),
		staged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staged_transactions_total",
			Help:      "Transactions written to a staging table, by stage.",
		}, []string{"stage"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Committed events handed to the broker, by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(
		c.commits,
		c.commitDuration,
		c.staged,
		c.published,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveCommit records one commit attempt and its outcome
func (c *Collector) ObserveCommit(protocol string, err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	status := http.StatusOK
	if err != nil {
		status = apperror.StatusOf(err)
	}
	c.commits.WithLabelValues(protocol, strconv.Itoa(status)).Inc()
	c.commitDuration.WithLabelValues(protocol).Observe(elapsed.Seconds())
}

// IncStaged counts a staged transaction
func (c *Collector) IncStaged(stage string) {
	if c == nil {
		return
	}
	c.staged.WithLabelValues(stage).Inc()
}

// IncPublished counts a publish attempt
func (c *Collector) IncPublished(err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.published.WithLabelValues(result).Inc()
}

// Handler serves the registry in the prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
