package telemetry

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
)

const methodCallTool = "tools/call"

// Middleware tags every incoming request with a request ID and records tool
// call outcomes.
func Middleware(metrics domain.Metrics, logger *zap.Logger) mcp.Middleware {
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("requests")

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			meta := RequestMeta{Method: method}
			if session := req.GetSession(); session != nil {
				meta.SessionID = session.ID()
			}
			ctx, meta = EnsureRequestMeta(ctx, meta)

			start := time.Now()
			res, err := next(ctx, method, req)
			if method != methodCallTool {
				return res, err
			}

			tool := ""
			if call, ok := req.(*mcp.CallToolRequest); ok && call.Params != nil {
				tool = call.Params.Name
			}
			status := callStatus(res, err)
			duration := time.Since(start)
			metrics.ObserveToolCall(tool, status, duration)

			fields := append(meta.Fields(),
				EventField(EventToolCall),
				ToolField(tool),
				zap.String("status", string(status)),
				DurationField(duration),
			)
			if err != nil {
				logger.Warn("tool call failed", append(fields, zap.Error(err))...)
			} else {
				logger.Debug("tool call finished", fields...)
			}
			return res, err
		}
	}
}

func callStatus(res mcp.Result, err error) domain.CallStatus {
	if err != nil {
		return domain.CallStatusError
	}
	if result, ok := res.(*mcp.CallToolResult); ok && result != nil && result.IsError {
		return domain.CallStatusToolError
	}
	return domain.CallStatusSuccess
}
