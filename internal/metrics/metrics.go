// Package metrics exposes store and crowd counters through prometheus.
package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the simulation updates
type Metrics struct {
	registry *prometheus.Registry

	StoreVisits      *prometheus.CounterVec
	Purchases        *prometheus.CounterVec
	RejectedPurchase *prometheus.CounterVec
	Revenue          *prometheus.CounterVec
	CrowdActors      prometheus.Gauge
	DialogueLines    prometheus.Counter
}

// New creates the collectors and registers them on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StoreVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dutyfree_store_visits_total",
			Help: "Store visits started, by store.",
		}, []string{"store"}),
		Purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dutyfree_purchases_total",
			Help: "Items added to the basket, by store.",
		}, []string{"store"}),
		RejectedPurchase: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dutyfree_purchases_rejected_total",
			Help: "Purchase attempts rejected for insufficient funds, by store.",
		}, []string{"store"}),
		Revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dutyfree_revenue_total",
			Help: "Money spent, by store.",
		}, []string{"store"}),
		CrowdActors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dutyfree_crowd_actors",
			Help: "NPC travelers currently simulated.",
		}),
		DialogueLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dutyfree_dialogue_lines_total",
			Help: "Clerk dialogue lines shown.",
		}),
	}
	m.registry.MustRegister(
		m.StoreVisits,
		m.Purchases,
		m.RejectedPurchase,
		m.Revenue,
		m.CrowdActors,
		m.DialogueLines,
	)
	return m
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// VisitStarted records a store entry
func (m *Metrics) VisitStarted(store string) {
	if m == nil {
		return
	}
	m.StoreVisits.WithLabelValues(store).Inc()
}

// Purchased records a successful purchase
func (m *Metrics) Purchased(store string, price int) {
	if m == nil {
		return
	}
	m.Purchases.WithLabelValues(store).Inc()
	m.Revenue.WithLabelValues(store).Add(float64(price))
}

// Rejected records a purchase refused for insufficient funds
func (m *Metrics) Rejected(store string) {
	if m == nil {
		return
	}
	m.RejectedPurchase.WithLabelValues(store).Inc()
}

// CrowdChanged adjusts the crowd gauge by delta actors
func (m *Metrics) CrowdChanged(delta int) {
	if m == nil {
		return
	}
	m.CrowdActors.Add(float64(delta))
}

// LineShown records a dialogue line
func (m *Metrics) LineShown() {
	if m == nil {
		return
	}
	m.DialogueLines.Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: metrics shutdown: %v", err)
		}
	}()

	log.Printf("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
