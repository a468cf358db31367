package tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mcpstarter/internal/domain"
)

type ConfirmActionInput struct {
	Action string `json:"action" jsonschema:"The action to confirm with the user"`
}

type FeedbackInput struct {
	Topic string `json:"topic,omitempty" jsonschema:"Optional topic for the feedback"`
}

// ConfirmationSchema is the form shown when asking the user to confirm an
// action. It lists no required keys: replies are validated against it even
// on decline and cancel, which carry no content. Handlers treat a missing
// "confirm" on accept as a refusal.
func ConfirmationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"confirm": map[string]any{
				"type":        "boolean",
				"title":       "Confirm",
				"description": "Confirm the action",
			},
			"reason": map[string]any{
				"type":        "string",
				"title":       "Reason",
				"description": "Optional reason for your choice",
			},
		},
	}
}

func confirmActionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "confirm_action",
		Title:       "Confirm Action",
		Description: "Demonstrates elicitation - requests user confirmation before proceeding.",
		Annotations: samplingAnnotations("Confirm Action"),
	}
}

func feedbackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_feedback",
		Title:       "Get Feedback",
		Description: "Demonstrates URL elicitation - opens a feedback form in the browser.",
		Annotations: annotations("Get Feedback", true, false, true),
	}
}

func (t *Toolset) confirmAction(ctx context.Context, req *mcp.CallToolRequest, in ConfirmActionInput) (*mcp.CallToolResult, any, error) {
	outcome, err := t.elicitor.Form(ctx, req.Session, domain.FormRequest{
		Message: "Please confirm: " + in.Action,
		Schema:  ConfirmationSchema(),
	})
	if err != nil {
		return textResult("Elicitation not supported or failed: " + err.Error()), nil, nil
	}

	switch outcome.Action {
	case domain.ElicitAccept:
		if !outcome.Bool("confirm") {
			return textResult("Action declined by user: " + in.Action), nil, nil
		}
		reason := outcome.String("reason")
		if reason == "" {
			reason = "No reason provided"
		}
		return textResult(fmt.Sprintf("Action confirmed: %s\nReason: %s", in.Action, reason)), nil, nil
	case domain.ElicitDecline:
		return textResult("User declined to respond for: " + in.Action), nil, nil
	default:
		return textResult("User cancelled elicitation for: " + in.Action), nil, nil
	}
}

func (t *Toolset) getFeedback(ctx context.Context, req *mcp.CallToolRequest, in FeedbackInput) (*mcp.CallToolResult, any, error) {
	feedbackURL := FeedbackURL(in.Topic)
	outcome, err := t.elicitor.URL(ctx, req.Session, domain.URLRequest{
		Message: "Please provide feedback on MCP Starters by completing the form at the URL below:",
		URL:     feedbackURL,
	})
	if err != nil {
		return textResult(fmt.Sprintf("URL elicitation not supported or failed: %s\n\nYou can still provide feedback at: %s", err, feedbackURL)), nil, nil
	}

	switch outcome.Action {
	case domain.ElicitAccept:
		return textResult("Thank you for providing feedback! Your input helps improve MCP Starters."), nil, nil
	case domain.ElicitDecline:
		return textResult("No problem! Feel free to provide feedback anytime at: " + feedbackURL), nil, nil
	default:
		return textResult("Feedback request cancelled."), nil, nil
	}
}

// FeedbackURL returns the feedback form address, titled with topic when set.
func FeedbackURL(topic string) string {
	if topic == "" {
		return domain.FeedbackURL
	}
	return domain.FeedbackURL + "&title=" + url.QueryEscape(topic)
}
