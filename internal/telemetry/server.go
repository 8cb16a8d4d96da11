package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/temp-sentinel/internal/domain/signal"
	"github.com/oshokin/temp-sentinel/internal/logger"
)

// shutdownTimeout bounds the graceful-stop wait on context cancellation.
const shutdownTimeout = 5 * time.Second

// TemperatureSink accepts an injected temperature; satisfied by the
// simulated sensor. A nil sink disables the injection endpoint.
type TemperatureSink interface {
	SetTemperature(celsius float64)
}

// Server serves the telemetry endpoints.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and the underlying HTTP server.
// The gatherer may be nil, in which case /metrics serves an empty registry.
func NewServer(address string, state *signal.State, gatherer prometheus.Gatherer, sink TemperatureSink) *Server {
	if gatherer == nil {
		gatherer = prometheus.NewRegistry()
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/healthz", handleHealth)
	router.Get("/state", handleState(state))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if sink != nil {
		router.Post("/simulate/temperature", handleTemperature(sink))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the telemetry router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	// Done channel is closed after Shutdown finishes so we block until the
	// server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down telemetry server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		//nolint:errcheck // Best effort on the way out.
		s.httpServer.Shutdown(shutdownCtx)
		close(done)
	}()

	logger.InfoKV(ctx, "Telemetry server listening", "address", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve telemetry: %w", err)
	}

	<-done
	logger.Info(ctx, "Telemetry server stopped")

	return nil
}

// handleHealth answers liveness probes.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Nothing useful to do with a write error here.
	w.Write([]byte("ok"))
}

// temperatureRequest is the injection payload.
type temperatureRequest struct {
	// Celsius is the temperature to feed the simulated sensor.
	Celsius float64 `json:"celsius"`
}

// handleTemperature feeds an injected reading into the simulated sensor,
// driving the alert latch exactly as a real temperature change would.
func handleTemperature(sink TemperatureSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req temperatureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "cannot parse JSON body", http.StatusBadRequest)

			return
		}

		sink.SetTemperature(req.Celsius)
		logger.InfoKV(r.Context(), "Simulated temperature injected", "celsius", req.Celsius)

		w.WriteHeader(http.StatusAccepted)
	}
}

// handleState serves a JSON snapshot of the shared signal state.
func handleState(state *signal.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(state.Snapshot()); err != nil {
			logger.Errorf(r.Context(), "Failed to encode state snapshot: %v", err)
		}
	}
}
