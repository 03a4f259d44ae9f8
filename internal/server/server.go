package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/employee-registry/internal/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the API router with logging and metrics middleware.
func NewRouter(log *slog.Logger, appMetrics *metrics.Metrics, handler *EmployeeHandler) *mux.Router {
	router := mux.NewRouter().StrictSlash(false)
	router.Use(Logging(log), Metrics(appMetrics))

	handler.Register(router)

	return router
}

// NewAPIServer wraps the API handler into an http.Server with the configured timeouts.
func NewAPIServer(addr string, handler http.Handler, timeout, idleTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       idleTimeout,
	}
}

// NewMonitoringServer exposes Prometheus metrics and the health check on their own listener.
func NewMonitoringServer(addr string, reg *prometheus.Registry, db DBPinger, log *slog.Logger) *http.Server {
	readTO := 5
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})).Methods(http.MethodGet)
	router.Handle("/healthz", NewHealthChecker(db, log)).Methods(http.MethodGet)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: time.Duration(readTO) * time.Second,
	}
}

// Run serves srv until ctx is cancelled, then shuts it down gracefully.
func Run(ctx context.Context, log *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		log.InfoContext(ctx, "Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server on '%s' failed: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server on '%s': %w", srv.Addr, err)
	}

	log.InfoContext(ctx, "HTTP server stopped", "address", srv.Addr)

	return nil
}
