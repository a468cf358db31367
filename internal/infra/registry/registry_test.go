package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/notifications"
)

type echoInput struct {
	Text string `json:"text"`
}

func echoHandler(_ context.Context, _ *mcp.CallToolRequest, in echoInput) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: in.Text}},
	}, nil, nil
}

func newServer() *mcp.Server {
	return mcp.NewServer(&mcp.Implementation{Name: "registry-test", Version: "0.1.0"}, &mcp.ServerOptions{
		HasTools:     true,
		HasResources: true,
		HasPrompts:   true,
	})
}

func TestToolRegistry_AddToolIsVisibleToClients(t *testing.T) {
	ctx := context.Background()
	server := newServer()
	reg := NewToolRegistry(server, nil, zap.NewNop())

	require.NoError(t, AddTool(reg, &mcp.Tool{Name: "echo", Description: "echo input"}, echoHandler))

	session := connectClient(t, ctx, server)

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	require.Equal(t, "echo", res.Tools[0].Name)

	out, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "echo", Arguments: map[string]any{"text": "hi"}})
	require.NoError(t, err)
	require.False(t, out.IsError)
	require.Equal(t, "hi", out.Content[0].(*mcp.TextContent).Text)
}

func TestToolRegistry_RejectsDuplicateNames(t *testing.T) {
	reg := NewToolRegistry(newServer(), nil, nil)

	require.NoError(t, AddTool(reg, &mcp.Tool{Name: "echo"}, echoHandler))
	err := AddTool(reg, &mcp.Tool{Name: "echo"}, echoHandler)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrDuplicateName))

	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeAlreadyExists, code)
	require.Equal(t, 1, reg.Count())
}

func TestToolRegistry_AddToolHandlerRequiresObjectSchema(t *testing.T) {
	reg := NewToolRegistry(newServer(), nil, nil)
	handler := func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{}, nil
	}

	err := reg.AddToolHandler(&mcp.Tool{Name: "raw", InputSchema: map[string]any{"type": "string"}}, handler)
	require.Error(t, err)
	require.False(t, reg.Has("raw"))

	require.NoError(t, reg.AddToolHandler(&mcp.Tool{Name: "raw", InputSchema: map[string]any{"type": "object"}}, handler))
	require.True(t, reg.Has("raw"))
}

func TestToolRegistry_NotifiesAfterInsertion(t *testing.T) {
	hub := notifications.NewListChangeHub()
	reg := NewToolRegistry(newServer(), hub, nil)

	var seen []string
	var visible bool
	hub.Listen(domain.ListChangeTools, func(event domain.ListChangeEvent) {
		seen = append(seen, event.Name)
		visible = reg.Has(event.Name)
	})

	require.NoError(t, AddTool(reg, &mcp.Tool{Name: "echo"}, echoHandler))
	require.Equal(t, []string{"echo"}, seen)
	require.True(t, visible)

	require.Error(t, AddTool(reg, &mcp.Tool{Name: "echo"}, echoHandler))
	require.Equal(t, []string{"echo"}, seen)
}

func TestToolRegistry_RejectsEmptyName(t *testing.T) {
	reg := NewToolRegistry(newServer(), nil, nil)
	err := AddTool(reg, &mcp.Tool{}, echoHandler)
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeInvalidArgument, code)
}

func TestResourceRegistry_StaticAndTemplates(t *testing.T) {
	ctx := context.Background()
	server := newServer()
	reg := NewResourceRegistry(server, nil, zap.NewNop())

	handler := func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     "content of " + req.Params.URI,
		}}}, nil
	}

	require.NoError(t, reg.AddResource(&mcp.Resource{URI: "about://server", Name: "About"}, handler))
	require.NoError(t, reg.AddTemplate(&mcp.ResourceTemplate{URITemplate: "greeting://{name}", Name: "Greeting"}, handler))

	err := reg.AddResource(&mcp.Resource{URI: "about://server", Name: "About again"}, handler)
	require.ErrorIs(t, err, domain.ErrDuplicateName)
	err = reg.AddTemplate(&mcp.ResourceTemplate{URITemplate: "greeting://{name}"}, handler)
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	require.Equal(t, []string{"about://server", "greeting://{name}"}, reg.URIs())

	session := connectClient(t, ctx, server)
	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "greeting://ada"})
	require.NoError(t, err)
	require.Equal(t, "content of greeting://ada", res.Contents[0].Text)
}

func TestPromptRegistry_AddPrompt(t *testing.T) {
	ctx := context.Background()
	server := newServer()
	hub := notifications.NewListChangeHub()
	reg := NewPromptRegistry(server, hub, nil)

	var events int
	hub.Listen(domain.ListChangePrompts, func(domain.ListChangeEvent) { events++ })

	handler := func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: "hello " + req.Params.Arguments["name"]},
		}}}, nil
	}

	prompt := &mcp.Prompt{Name: "greet", Arguments: []*mcp.PromptArgument{{Name: "name", Required: true}}}
	require.NoError(t, reg.AddPrompt(prompt, handler))
	require.ErrorIs(t, reg.AddPrompt(prompt, handler), domain.ErrDuplicateName)
	require.Equal(t, 1, events)
	require.Equal(t, []string{"greet"}, reg.Names())

	session := connectClient(t, ctx, server)
	res, err := session.GetPrompt(ctx, &mcp.GetPromptParams{Name: "greet", Arguments: map[string]string{"name": "ada"}})
	require.NoError(t, err)
	require.Equal(t, "hello ada", res.Messages[0].Content.(*mcp.TextContent).Text)
}

func connectClient(t *testing.T, ctx context.Context, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ct, st := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
