package elicitation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/telemetry"
)

const (
	ModeForm = "form"
	ModeURL  = "url"
)

// Session is the part of a server session used to elicit user input.
type Session interface {
	InitializeParams() *mcp.InitializeParams
	Elicit(ctx context.Context, params *mcp.ElicitParams) (*mcp.ElicitResult, error)
}

// Client sends elicitation/create requests and maps the reply onto
// domain.ElicitOutcome.
type Client struct {
	metrics domain.Metrics
	logger  *zap.Logger
	newID   func() string
}

func NewClient(metrics domain.Metrics, logger *zap.Logger) *Client {
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		metrics: metrics,
		logger:  logger.Named("elicitation"),
		newID:   uuid.NewString,
	}
}

// Supported reports whether the client declared the elicitation capability.
func Supported(session Session) bool {
	if session == nil {
		return false
	}
	params := session.InitializeParams()
	return params != nil && params.Capabilities != nil && params.Capabilities.Elicitation != nil
}

// Form requests structured input described by req.Schema.
func (c *Client) Form(ctx context.Context, session Session, req domain.FormRequest) (domain.ElicitOutcome, error) {
	return c.elicit(ctx, session, &mcp.ElicitParams{
		Mode:            ModeForm,
		Message:         req.Message,
		RequestedSchema: req.Schema,
	})
}

// URL asks the user to complete an out-of-band interaction at req.URL.
func (c *Client) URL(ctx context.Context, session Session, req domain.URLRequest) (domain.ElicitOutcome, error) {
	return c.elicit(ctx, session, &mcp.ElicitParams{
		Mode:          ModeURL,
		Message:       req.Message,
		URL:           req.URL,
		ElicitationID: c.newID(),
	})
}

func (c *Client) elicit(ctx context.Context, session Session, params *mcp.ElicitParams) (domain.ElicitOutcome, error) {
	if !Supported(session) {
		return domain.ElicitOutcome{}, domain.ErrElicitationUnsupported
	}
	res, err := session.Elicit(ctx, params)
	if err != nil {
		c.logger.Debug("elicitation failed",
			telemetry.EventField(telemetry.EventElicitation),
			zap.String("mode", params.Mode),
			zap.Error(err),
		)
		return domain.ElicitOutcome{}, fmt.Errorf("elicit %s: %w", params.Mode, err)
	}
	if res == nil {
		return domain.ElicitOutcome{}, fmt.Errorf("elicit %s: empty result", params.Mode)
	}

	outcome := domain.ElicitOutcome{Action: domain.ParseElicitAction(res.Action)}
	if outcome.Action == domain.ElicitAccept {
		outcome.Content = res.Content
	}
	c.metrics.ObserveElicitation(params.Mode, outcome.Action)
	c.logger.Debug("elicitation completed",
		telemetry.EventField(telemetry.EventElicitation),
		zap.String("mode", params.Mode),
		zap.String("action", string(outcome.Action)),
	)
	return outcome, nil
}
