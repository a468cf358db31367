// Package prompts holds the prompt templates of the starter server and the
// argument completions that go with them.
package prompts

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/infra/registry"
)

var greetStyles = map[string]string{
	"formal":       "Please compose a formal, professional greeting for %s.",
	"casual":       "Write a casual, friendly hello to %s.",
	"enthusiastic": "Create an excited, enthusiastic greeting for %s!",
}

var reviewFocus = map[string]string{
	"security":    "Focus on security vulnerabilities and potential exploits.",
	"performance": "Focus on performance optimizations and efficiency issues.",
	"readability": "Focus on code clarity, naming, and maintainability.",
	"all":         "Provide a comprehensive review covering security, performance, and readability.",
}

type Prompts struct {
	registry *registry.PromptRegistry
	logger   *zap.Logger
}

func New(reg *registry.PromptRegistry, logger *zap.Logger) *Prompts {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prompts{registry: reg, logger: logger.Named("prompts")}
}

func (p *Prompts) Register() error {
	if err := p.registry.AddPrompt(&mcp.Prompt{
		Name:        "greet",
		Title:       "Greeting Prompt",
		Description: "Generate a greeting in a specific style",
		Arguments: []*mcp.PromptArgument{
			{Name: "name", Description: "Name of the person to greet", Required: true},
			{Name: "style", Description: "The greeting style (formal, casual, or enthusiastic)"},
		},
	}, p.greet); err != nil {
		return err
	}
	return p.registry.AddPrompt(&mcp.Prompt{
		Name:        "code_review",
		Title:       "Code Review",
		Description: "Request a code review with specific focus areas",
		Arguments: []*mcp.PromptArgument{
			{Name: "code", Description: "The code to review", Required: true},
			{Name: "language", Description: "Programming language", Required: true},
			{Name: "focus", Description: "What to focus on (security, performance, readability, or all)"},
		},
	}, p.codeReview)
}

func (p *Prompts) greet(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	name := args["name"]
	if name == "" {
		return nil, missingArgument("greet", "name")
	}
	return userMessage("Generate a greeting in a specific style", Greet(name, args["style"])), nil
}

func (p *Prompts) codeReview(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	for _, required := range []string{"code", "language"} {
		if args[required] == "" {
			return nil, missingArgument("code_review", required)
		}
	}
	return userMessage("Request a code review with specific focus areas", CodeReview(args["code"], args["language"], args["focus"])), nil
}

// Greet renders the greet prompt. Styles match exactly; anything else,
// including a differently cased key, falls back to casual.
func Greet(name, style string) string {
	format, ok := greetStyles[style]
	if !ok {
		format = greetStyles["casual"]
	}
	return fmt.Sprintf(format, name)
}

// CodeReview renders the code_review prompt. Unknown focus values fall back
// to a full review.
func CodeReview(code, language, focus string) string {
	instruction, ok := reviewFocus[focus]
	if !ok {
		instruction = reviewFocus["all"]
	}
	return fmt.Sprintf("Please review the following %s code. %s\n\n```%s\n%s\n```", language, instruction, language, code)
}

func userMessage(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}

func missingArgument(prompt, arg string) error {
	return fmt.Errorf("prompt %s: missing required argument %q", prompt, arg)
}
