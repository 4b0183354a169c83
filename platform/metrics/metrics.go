// Package metrics exposes Prometheus collectors for HTTP traffic and lead
// analysis outcomes. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	objections        *prometheus.CounterVec
	textGen           *prometheus.CounterVec
	leadsScored       *prometheus.CounterVec
}

// New builds collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		objections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadscout_objections_detected_total",
			Help: "Objection categories detected in sales notes.",
		}, []string{"category"}),
		textGen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadscout_textgen_total",
			Help: "Summary and follow-up generations by producing source.",
		}, []string{"source"}),
		leadsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadscout_leads_scored_total",
			Help: "Leads scored by resulting priority status.",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.objections,
		m.textGen,
		m.leadsScored,
	)

	return m
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObjectionDetected(category string) {
	if m == nil {
		return
	}
	m.objections.WithLabelValues(category).Inc()
}

func (m *Metrics) TextGenerated(source string) {
	if m == nil {
		return
	}
	m.textGen.WithLabelValues(source).Inc()
}

func (m *Metrics) LeadScored(status string) {
	if m == nil {
		return
	}
	m.leadsScored.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
