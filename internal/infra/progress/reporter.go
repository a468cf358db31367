package progress

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Notifier is the part of a server session that delivers progress.
type Notifier interface {
	NotifyProgress(ctx context.Context, params *mcp.ProgressNotificationParams) error
}

// Reporter sends progress for a single request. It is not safe for
// concurrent use; one handler goroutine owns it, which keeps notifications in
// issue order. A request without a progress token gets a silent reporter.
type Reporter struct {
	notifier Notifier
	token    any
	total    float64
	last     float64
	sent     int
}

func NewReporter(notifier Notifier, token any, total float64) *Reporter {
	return &Reporter{notifier: notifier, token: token, total: total, last: -1}
}

// ForRequest builds a reporter from a tool call.
func ForRequest(req *mcp.CallToolRequest, total float64) *Reporter {
	if req == nil || req.Params == nil || req.Session == nil {
		return NewReporter(nil, nil, total)
	}
	return NewReporter(req.Session, req.Params.GetProgressToken(), total)
}

// Enabled reports whether the caller asked for progress.
func (r *Reporter) Enabled() bool {
	return r != nil && r.notifier != nil && r.token != nil
}

// Report sends one notification. Values that do not advance past the last
// reported value are dropped so the sequence stays strictly increasing.
func (r *Reporter) Report(ctx context.Context, value float64, message string) error {
	if !r.Enabled() {
		return nil
	}
	if value <= r.last {
		return nil
	}
	err := r.notifier.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
		ProgressToken: r.token,
		Progress:      value,
		Total:         r.total,
		Message:       message,
	})
	if err != nil {
		return err
	}
	r.last = value
	r.sent++
	return nil
}

// Sent returns the number of notifications delivered.
func (r *Reporter) Sent() int {
	if r == nil {
		return 0
	}
	return r.sent
}
