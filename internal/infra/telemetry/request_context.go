package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestMetaKey struct{}

// RequestMeta identifies one inbound MCP request for log correlation.
type RequestMeta struct {
	RequestID string
	Method    string
	SessionID string
}

func (m RequestMeta) empty() bool {
	return m == RequestMeta{}
}

// Fields renders the populated parts of m as zap fields.
func (m RequestMeta) Fields() []zap.Field {
	var fields []zap.Field
	if m.RequestID != "" {
		fields = append(fields, RequestIDField(m.RequestID))
	}
	if m.Method != "" {
		fields = append(fields, MethodField(m.Method))
	}
	if m.SessionID != "" {
		fields = append(fields, SessionIDField(m.SessionID))
	}
	return fields
}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	if meta.empty() {
		return ctx
	}
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func requestMeta(ctx context.Context) (RequestMeta, bool) {
	meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta, ok
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	meta, _ := requestMeta(ctx)
	return meta.RequestID, meta.RequestID != ""
}

// EnsureRequestMeta stores meta on ctx. An ID already present on ctx wins
// over a fresh one; a uuid is minted when neither exists.
func EnsureRequestMeta(ctx context.Context, meta RequestMeta) (context.Context, RequestMeta) {
	if meta.RequestID == "" {
		if parent, ok := requestMeta(ctx); ok {
			meta.RequestID = parent.RequestID
		}
	}
	if meta.RequestID == "" {
		meta.RequestID = uuid.NewString()
	}
	return WithRequestMeta(ctx, meta), meta
}
