package app

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/telemetry"
)

// logBridge forwards server log entries to every connected session as
// notifications/message. Sessions that never set a level drop them.
type logBridge struct {
	server *mcp.Server
	logs   *telemetry.LogBroadcaster
	logger *zap.Logger
}

func newLogBridge(server *mcp.Server, logs *telemetry.LogBroadcaster, logger *zap.Logger) *logBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logBridge{
		server: server,
		logs:   logs,
		logger: logger.Named("log_bridge"),
	}
}

func (b *logBridge) Run(ctx context.Context) {
	if b.logs == nil || b.server == nil {
		return
	}
	entries := b.logs.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			b.publish(ctx, entry)
		}
	}
}

// publish ignores per-session failures; logging them would feed the
// broadcaster again.
func (b *logBridge) publish(ctx context.Context, entry domain.LogEntry) {
	params := &mcp.LoggingMessageParams{
		Logger: entry.Logger,
		Level:  mcp.LoggingLevel(entry.Level),
		Data:   entry.DataJSON,
	}
	for session := range b.server.Sessions() {
		_ = session.Log(ctx, params)
	}
}
