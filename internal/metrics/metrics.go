// Package metrics exposes the Prometheus collectors of the ingestion service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	EmailsStored  prometheus.Counter
	Extractions   *prometheus.CounterVec
	Sales         *prometheus.CounterVec
	StockRows     *prometheus.CounterVec
	WelcomeEmails *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cvo_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cvo_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	emails := prometheus.NewCounter(prometheus.CounterOpts{Name: "cvo_emails_stored_total"})
	extractions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cvo_extractions_total",
		Help: "Stored extractions by source and status.",
	}, []string{"source", "status"})
	sales := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cvo_sales_reconciled_total",
		Help: "Reconciled sales by action (insert, update, duplicate, resale).",
	}, []string{"action"})
	stock := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cvo_stock_rows_total",
		Help: "Imported stock rows by result (inserted, updated, failed).",
	}, []string{"result"})
	welcome := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cvo_welcome_emails_total"}, []string{"result"})

	r.MustRegister(
		httpRequests, httpDuration, emails, extractions, sales, stock, welcome,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:           r,
		HTTPRequests:  httpRequests,
		HTTPDuration:  httpDuration,
		EmailsStored:  emails,
		Extractions:   extractions,
		Sales:         sales,
		StockRows:     stock,
		WelcomeEmails: welcome,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// ObserveRequest records one served HTTP request. route is the matched mux
// pattern, never the raw path, to keep label cardinality bounded.
func (r *Registry) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (r *Registry) EmailStored() { r.EmailsStored.Inc() }

func (r *Registry) ExtractionStored(source, status string) {
	r.Extractions.WithLabelValues(source, status).Inc()
}

func (r *Registry) SaleReconciled(action string) { r.Sales.WithLabelValues(action).Inc() }

func (r *Registry) StockRow(result string) { r.StockRows.WithLabelValues(result).Inc() }

func (r *Registry) WelcomeEmail(sent bool) {
	result := "sent"
	if !sent {
		result = "failed"
	}
	r.WelcomeEmails.WithLabelValues(result).Inc()
}
