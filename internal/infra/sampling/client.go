package sampling

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/telemetry"
)

// Session is the part of a server session used to request completions.
type Session interface {
	InitializeParams() *mcp.InitializeParams
	CreateMessage(ctx context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error)
}

// Client sends sampling/createMessage requests to the connected client.
type Client struct {
	metrics domain.Metrics
	logger  *zap.Logger
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
		logger:  logger.Named("sampling"),
	}
}

// Supported reports whether the client declared the sampling capability.
func Supported(session Session) bool {
	if session == nil {
		return false
	}
	params := session.InitializeParams()
	return params != nil && params.Capabilities != nil && params.Capabilities.Sampling != nil
}

// CreateMessage asks the client to complete req.Prompt as a single user turn.
func (c *Client) CreateMessage(ctx context.Context, session Session, req domain.SamplingRequest) (domain.SamplingResult, error) {
	if !Supported(session) {
		c.metrics.ObserveSampling(domain.ErrSamplingUnsupported)
		return domain.SamplingResult{}, domain.ErrSamplingUnsupported
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.DefaultAskMaxTokens
	}

	res, err := session.CreateMessage(ctx, &mcp.CreateMessageParams{
		Messages: []*mcp.SamplingMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: req.Prompt},
		}},
		MaxTokens: maxTokens,
	})
	c.metrics.ObserveSampling(err)
	if err != nil {
		c.logger.Debug("sampling request failed", telemetry.EventField(telemetry.EventSampling), zap.Error(err))
		return domain.SamplingResult{}, fmt.Errorf("create message: %w", err)
	}
	if res == nil {
		return domain.SamplingResult{}, fmt.Errorf("create message: empty result")
	}

	out := domain.SamplingResult{Model: res.Model}
	if text, ok := res.Content.(*mcp.TextContent); ok {
		out.Text = text.Text
		out.IsText = true
	}
	c.logger.Debug("sampling request completed",
		telemetry.EventField(telemetry.EventSampling),
		zap.String("model", res.Model),
		zap.Bool("text", out.IsText),
	)
	return out, nil
}
