// Package metrics exposes prometheus counters for the polling loops and the
// /metrics HTTP endpoint.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Loop label values.
const (
	LoopSolves  = "solves"
	LoopCatalog = "catalog"
	LoopRank    = "rank"
)

// Metrics holds the bot's prometheus collectors. A nil *Metrics is valid and
// turns every method into a no-op, so callers never need to branch.
type Metrics struct {
	cyclesTotal      *prometheus.CounterVec
	solvesAnnounced  prometheus.Counter
	announceFailures prometheus.Counter
	lastSuccessTS    *prometheus.GaugeVec

	server *http.Server
}

// New registers the bot's collectors on a fresh registry and prepares an HTTP
// server for /metrics and /healthz on addr.
func New(addr string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		cyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackthebot",
			Name:      "cycles_total",
			Help:      "Number of completed poll cycles by loop and status",
		}, []string{"loop", "status"}),
		solvesAnnounced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hackthebot",
			Name:      "solves_announced_total",
			Help:      "Number of solve announcements delivered",
		}),
		announceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hackthebot",
			Name:      "announce_failures_total",
			Help:      "Number of solve announcements that failed delivery",
		}),
		lastSuccessTS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hackthebot",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful cycle by loop",
		}, []string{"loop"}),
	}
	reg.MustRegister(m.cyclesTotal, m.solvesAnnounced, m.announceFailures, m.lastSuccessTS)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	m.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return m
}

// Serve blocks serving /metrics and /healthz until Shutdown.
func (m *Metrics) Serve() error {
	if m == nil {
		return nil
	}
	return m.server.ListenAndServe()
}

// Shutdown stops the metrics server.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}

// CycleOK records a successful cycle for the loop and refreshes its last-success gauge.
func (m *Metrics) CycleOK(loop string) {
	if m == nil {
		return
	}
	m.cyclesTotal.WithLabelValues(loop, "ok").Inc()
	m.lastSuccessTS.WithLabelValues(loop).Set(float64(time.Now().Unix()))
}

// CycleError records a failed cycle for the loop.
func (m *Metrics) CycleError(loop string) {
	if m == nil {
		return
	}
	m.cyclesTotal.WithLabelValues(loop, "error").Inc()
}

// SolveAnnounced counts one delivered announcement.
func (m *Metrics) SolveAnnounced() {
	if m == nil {
		return
	}
	m.solvesAnnounced.Inc()
}

// AnnounceFailed counts one failed announcement delivery.
func (m *Metrics) AnnounceFailed() {
	if m == nil {
		return
	}
	m.announceFailures.Inc()
}
