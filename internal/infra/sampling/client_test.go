package sampling

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"mcpstarter/internal/domain"
)

type fakeSession struct {
	caps   *mcp.ClientCapabilities
	result *mcp.CreateMessageResult
	err    error
	got    *mcp.CreateMessageParams
}

func (f *fakeSession) InitializeParams() *mcp.InitializeParams {
	return &mcp.InitializeParams{Capabilities: f.caps}
}

func (f *fakeSession) CreateMessage(_ context.Context, params *mcp.CreateMessageParams) (*mcp.CreateMessageResult, error) {
	f.got = params
	return f.result, f.err
}

func TestClient_CreateMessageText(t *testing.T) {
	session := &fakeSession{
		caps:   &mcp.ClientCapabilities{Sampling: &mcp.SamplingCapabilities{}},
		result: &mcp.CreateMessageResult{Content: &mcp.TextContent{Text: "42"}, Model: "test-model", Role: "assistant"},
	}

	res, err := NewClient(nil, nil).CreateMessage(context.Background(), session, domain.SamplingRequest{Prompt: "meaning of life?"})
	require.NoError(t, err)
	require.True(t, res.IsText)
	require.Equal(t, "42", res.Text)
	require.Equal(t, "test-model", res.Model)

	require.Equal(t, int64(domain.DefaultAskMaxTokens), session.got.MaxTokens)
	require.Len(t, session.got.Messages, 1)
	require.Equal(t, "meaning of life?", session.got.Messages[0].Content.(*mcp.TextContent).Text)
}

func TestClient_CreateMessageNonText(t *testing.T) {
	session := &fakeSession{
		caps:   &mcp.ClientCapabilities{Sampling: &mcp.SamplingCapabilities{}},
		result: &mcp.CreateMessageResult{Content: &mcp.ImageContent{MIMEType: "image/png", Data: []byte{1}}},
	}

	res, err := NewClient(nil, nil).CreateMessage(context.Background(), session, domain.SamplingRequest{Prompt: "draw", MaxTokens: 5})
	require.NoError(t, err)
	require.False(t, res.IsText)
	require.Equal(t, int64(5), session.got.MaxTokens)
}

func TestClient_CreateMessageUnsupported(t *testing.T) {
	session := &fakeSession{caps: &mcp.ClientCapabilities{}}
	_, err := NewClient(nil, nil).CreateMessage(context.Background(), session, domain.SamplingRequest{Prompt: "x"})
	require.ErrorIs(t, err, domain.ErrSamplingUnsupported)
	require.Nil(t, session.got)
}

func TestClient_CreateMessageError(t *testing.T) {
	session := &fakeSession{
		caps: &mcp.ClientCapabilities{Sampling: &mcp.SamplingCapabilities{}},
		err:  errors.New("rate limited"),
	}
	_, err := NewClient(nil, nil).CreateMessage(context.Background(), session, domain.SamplingRequest{Prompt: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate limited")
}
