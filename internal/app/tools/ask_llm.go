package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
)

type AskLLMInput struct {
	Prompt    string `json:"prompt" jsonschema:"The question or prompt for the LLM"`
	MaxTokens int64  `json:"max_tokens,omitempty" jsonschema:"Maximum tokens in response"`
}

func askLLMTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ask_llm",
		Title:       "Ask LLM",
		Description: "Ask the connected LLM a question using sampling.",
		Annotations: samplingAnnotations("Ask LLM"),
		Icons:       emojiIcon(iconRobot),
	}
}

func (t *Toolset) askLLM(ctx context.Context, req *mcp.CallToolRequest, in AskLLMInput) (*mcp.CallToolResult, any, error) {
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.DefaultAskMaxTokens
	}
	res, err := t.sampler.CreateMessage(ctx, req.Session, domain.SamplingRequest{
		Prompt:    in.Prompt,
		MaxTokens: maxTokens,
	})
	if err != nil {
		t.logger.Debug("ask_llm sampling failed", zap.Error(err))
		return textResult("Sampling not supported or failed: " + err.Error()), nil, nil
	}
	if !res.IsText {
		return textResult("LLM Response: [non-text response]"), nil, nil
	}
	return textResult("LLM Response: " + res.Text), nil, nil
}
