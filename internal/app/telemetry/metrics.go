package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"liftoff/internal/config/logger"
)

// Metrics holds the prometheus collectors for the mission core
type Metrics struct {
	registry *prometheus.Registry

	state          *prometheus.GaugeVec
	framesSent     *prometheus.CounterVec
	framesReceived *prometheus.CounterVec
	retries        prometheus.Counter
	aborts         prometheus.Counter

	server *http.Server
	log    logger.Logger
}

// NewMetrics creates and registers the mission collectors
func NewMetrics(log logger.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "liftoff_mission_state",
				Help: "Active mission state (1 for the current state, 0 otherwise)",
			},
			[]string{"state"},
		),
		framesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liftoff_frames_sent_total",
				Help: "Outbound frames by action",
			},
			[]string{"action"},
		),
		framesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liftoff_frames_received_total",
				Help: "Inbound frames by action",
			},
			[]string{"action"},
		),
		retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "liftoff_retries_total",
				Help: "SERVICE frames re-emitted after a NACK",
			},
		),
		aborts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "liftoff_aborts_total",
				Help: "Missions ended in Abort",
			},
		),
		log: log.WithComponent("METRICS"),
	}

	registry.MustRegister(m.state, m.framesSent, m.framesReceived, m.retries, m.aborts)

	return m
}

// SetState marks the active mission state
func (m *Metrics) SetState(state string) {
	m.state.Reset()
	m.state.WithLabelValues(state).Set(1)
}

// FrameSent counts an outbound frame
func (m *Metrics) FrameSent(action string) {
	m.framesSent.WithLabelValues(action).Inc()
}

// FrameReceived counts an inbound frame
func (m *Metrics) FrameReceived(action string) {
	m.framesReceived.WithLabelValues(action).Inc()
}

// Retry counts a NACK-driven re-emission
func (m *Metrics) Retry() {
	m.retries.Inc()
}

// Abort counts a mission abort
func (m *Metrics) Abort() {
	m.aborts.Inc()
}

// Serve exposes /metrics on the given address until the context ends.
// A no-op when address is empty.
func (m *Metrics) Serve(ctx context.Context, address string) {
	if address == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	m.server = &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_ = m.server.Shutdown(shutdownCtx)
	}()

	go func() {
		m.log.Info().Str("address", address).Msg("Serving metrics")

		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.log.Error().Err(err).Msg("Metrics server failed")
		}
	}()
}
