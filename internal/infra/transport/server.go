package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/telemetry"
)

const healthComponent = "transport"

// HTTPOptions configures the HTTP listener.
type HTTPOptions struct {
	Addr           string
	Path           string
	WebSocketPath  string
	AllowedOrigins []string // extends the WebSocket same-origin check
	Health         *telemetry.HealthTracker
	// Observability mounts /metrics and /healthz on the same mux.
	Observability  telemetry.HTTPServerOptions
}

// RunStdio serves one session over stdin/stdout until ctx is done or the
// client disconnects.
func RunStdio(ctx context.Context, server *mcp.Server, health *telemetry.HealthTracker, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Named("transport").Info("serving (stdio transport)")
	setHealth(health, "ok")
	defer setHealth(health, "stopped")
	return server.Run(ctx, &mcp.StdioTransport{})
}

// NewHTTPHandler routes streamable HTTP and websocket traffic to server.
func NewHTTPHandler(server *mcp.Server, opts HTTPOptions, logger *zap.Logger) http.Handler {
	path := opts.Path
	if path == "" {
		path = domain.DefaultHTTPPath
	}
	wsPath := opts.WebSocketPath
	if wsPath == "" {
		wsPath = domain.DefaultWebSocketPath
	}

	mux := http.NewServeMux()
	mux.Handle(path, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))
	mux.Handle(wsPath, WebSocketHandler(server, opts.AllowedOrigins, logger))

	observability := opts.Observability
	observability.EnableHealthz = true
	if observability.Health == nil {
		observability.Health = opts.Health
	}
	telemetry.Mount(mux, observability)
	return mux
}

// ServeHTTP listens on opts.Addr until ctx is done, then drains in-flight
// requests.
func ServeHTTP(ctx context.Context, server *mcp.Server, opts HTTPOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("transport")
	if opts.Addr == "" {
		return domain.E(domain.CodeInvalidArgument, "transport.ServeHTTP", "listen address is required", nil)
	}

	logger.Info("serving (http transport)",
		zap.String("path", firstNonEmpty(opts.Path, domain.DefaultHTTPPath)),
		zap.String("websocket_path", firstNonEmpty(opts.WebSocketPath, domain.DefaultWebSocketPath)),
	)
	setHealth(opts.Health, "ok")
	err := telemetry.ServeUntilDone(ctx, "mcp", &http.Server{
		Addr:              opts.Addr,
		Handler:           NewHTTPHandler(server, opts, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}, logger)
	if err != nil {
		setHealth(opts.Health, "failed")
		return err
	}
	setHealth(opts.Health, "stopped")
	return nil
}

func setHealth(tracker *telemetry.HealthTracker, state string) {
	if tracker != nil {
		tracker.Set(healthComponent, state)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
