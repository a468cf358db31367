package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type HelloInput struct {
	Name string `json:"name" jsonschema:"The name to greet"`
}

func helloTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hello",
		Title:       "Say Hello",
		Description: "A friendly greeting tool that says hello to someone.",
		Annotations: readOnlyAnnotations("Say Hello"),
		Icons:       emojiIcon(iconWavingHand),
	}
}

func (t *Toolset) hello(_ context.Context, _ *mcp.CallToolRequest, in HelloInput) (*mcp.CallToolResult, any, error) {
	return textResult(fmt.Sprintf("%s, %s! Welcome to MCP.", t.greeting, in.Name)), nil, nil
}
