package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
)

const defaultObservabilityAddr = "127.0.0.1:9090"

type HTTPServerOptions struct {
	Addr          string
	EnableMetrics bool
	EnableHealthz bool
	Health        *HealthTracker
	Registry      prometheus.Gatherer
}

// Mount registers /metrics and /healthz on mux as enabled.
func Mount(mux *http.ServeMux, opts HTTPServerOptions) {
	if opts.EnableMetrics {
		gatherer := opts.Registry
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	if opts.EnableHealthz {
		mux.Handle("/healthz", HealthHandler(opts.Health))
	}
}

// StartHTTPServer serves the observability endpoints on their own listener
// until ctx is done. It is a no-op when both endpoints are disabled.
func StartHTTPServer(ctx context.Context, opts HTTPServerOptions, logger *zap.Logger) error {
	if !opts.EnableMetrics && !opts.EnableHealthz {
		return nil
	}
	addr := opts.Addr
	if addr == "" {
		addr = defaultObservabilityAddr
	}

	mux := http.NewServeMux()
	Mount(mux, opts)
	return ServeUntilDone(ctx, "observability", &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}, logger)
}

// ServeUntilDone runs srv until ctx is done and then drains it within
// domain.DefaultShutdownTimeout. A listen failure returns immediately.
func ServeUntilDone(ctx context.Context, name string, srv *http.Server, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("listener", name), zap.String("addr", srv.Addr))

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http listener started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("%s listener: %w", name, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), domain.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http listener shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("http listener stopped")
	return nil
}

// HealthHandler reports tracker state as JSON; anything but "ok" is a 503.
func HealthHandler(tracker *HealthTracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := HealthReport{Status: "ok"}
		if tracker != nil {
			report = tracker.Report()
		}

		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	})
}
