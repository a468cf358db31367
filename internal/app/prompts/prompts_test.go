package prompts

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/catalog"
	"mcpstarter/internal/infra/registry"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	store := catalog.NewStore([]domain.Item{{ID: "1"}, {ID: "2"}, {ID: "12"}})
	server := mcp.NewServer(&mcp.Implementation{Name: domain.ServerName, Version: domain.ServerVersion}, &mcp.ServerOptions{
		HasPrompts:        true,
		CompletionHandler: NewCompleter(store).Complete,
	})
	require.NoError(t, New(registry.NewPromptRegistry(server, nil, nil), nil).Register())

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	assert.Equal(t, mcp.Role("user"), res.Messages[0].Role)
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListPrompts(t *testing.T) {
	session := connect(t)
	res, err := session.ListPrompts(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Prompts))
	for _, p := range res.Prompts {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"greet", "code_review"}, names)
}

func TestGreetPrompt(t *testing.T) {
	session := connect(t)
	ctx := context.Background()

	tests := []struct {
		style string
		want  string
	}{
		{"formal", "Please compose a formal, professional greeting for Ada."},
		{"casual", "Write a casual, friendly hello to Ada."},
		{"enthusiastic", "Create an excited, enthusiastic greeting for Ada!"},
		{"", "Write a casual, friendly hello to Ada."},
		{"pirate", "Write a casual, friendly hello to Ada."},
		{"FORMAL", "Write a casual, friendly hello to Ada."},
		{" formal", "Write a casual, friendly hello to Ada."},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			args := map[string]string{"name": "Ada"}
			if tt.style != "" {
				args["style"] = tt.style
			}
			res, err := session.GetPrompt(ctx, &mcp.GetPromptParams{Name: "greet", Arguments: args})
			require.NoError(t, err)
			assert.Equal(t, tt.want, promptText(t, res))
		})
	}
}

func TestGreetPrompt_MissingName(t *testing.T) {
	session := connect(t)
	_, err := session.GetPrompt(context.Background(), &mcp.GetPromptParams{Name: "greet", Arguments: map[string]string{}})
	require.Error(t, err)
}

func TestCodeReviewPrompt(t *testing.T) {
	session := connect(t)
	res, err := session.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name: "code_review",
		Arguments: map[string]string{
			"code":     "x := 1",
			"language": "go",
			"focus":    "security",
		},
	})
	require.NoError(t, err)
	want := "Please review the following go code. Focus on security vulnerabilities and potential exploits.\n\n```go\nx := 1\n```"
	assert.Equal(t, want, promptText(t, res))
}

func TestCodeReview_UnknownFocusFallsBackToAll(t *testing.T) {
	text := CodeReview("print(1)", "python", "style")
	assert.Contains(t, text, "Provide a comprehensive review covering security, performance, and readability.")
	assert.Contains(t, text, "```python\nprint(1)\n```")
}

func TestCodeReview_FocusIsCaseSensitive(t *testing.T) {
	text := CodeReview("x", "go", "Security")
	assert.Contains(t, text, "Provide a comprehensive review covering security, performance, and readability.")
}

func TestComplete(t *testing.T) {
	session := connect(t)
	ctx := context.Background()

	tests := []struct {
		name string
		ref  *mcp.CompleteReference
		arg  string
		val  string
		want []string
	}{
		{"style", &mcp.CompleteReference{Type: "ref/prompt", Name: "greet"}, "style", "f", []string{"formal"}},
		{"style all", &mcp.CompleteReference{Type: "ref/prompt", Name: "greet"}, "style", "", []string{"casual", "enthusiastic", "formal"}},
		{"focus", &mcp.CompleteReference{Type: "ref/prompt", Name: "code_review"}, "focus", "p", []string{"performance"}},
		{"language", &mcp.CompleteReference{Type: "ref/prompt", Name: "code_review"}, "language", "ja", []string{"java", "javascript"}},
		{"item id", &mcp.CompleteReference{Type: "ref/resource", URI: "item://{id}"}, "id", "1", []string{"1", "12"}},
		{"unknown argument", &mcp.CompleteReference{Type: "ref/prompt", Name: "greet"}, "name", "A", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := session.Complete(ctx, &mcp.CompleteParams{
				Ref:      tt.ref,
				Argument: mcp.CompleteParamsArgument{Name: tt.arg, Value: tt.val},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Completion.Values)
			assert.Equal(t, len(tt.want), res.Completion.Total)
			assert.False(t, res.Completion.HasMore)
		})
	}
}

func TestCompletion_Truncates(t *testing.T) {
	values := make([]string, 150)
	for i := range values {
		values[i] = "v"
	}
	res := completion(values)
	assert.Len(t, res.Completion.Values, maxCompletionValues)
	assert.Equal(t, 150, res.Completion.Total)
	assert.True(t, res.Completion.HasMore)
}
