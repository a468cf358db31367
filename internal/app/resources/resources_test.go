package resources

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/catalog"
	"mcpstarter/internal/infra/registry"
)

func defaultItems() []domain.Item {
	return []domain.Item{
		{ID: "1", Name: "Widget", Description: "A useful widget"},
		{ID: "2", Name: "Gadget", Description: "A fancy gadget"},
		{ID: "3", Name: "Gizmo", Description: "A mysterious gizmo"},
	}
}

func connect(t *testing.T, store domain.ItemStore) (*mcp.ClientSession, *registry.ResourceRegistry) {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: domain.ServerName, Version: domain.ServerVersion}, &mcp.ServerOptions{HasResources: true})
	reg := registry.NewResourceRegistry(server, nil, zap.NewNop())
	require.NoError(t, New(reg, store, nil).Register())

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session, reg
}

func read(t *testing.T, session *mcp.ClientSession, uri string) string {
	t.Helper()
	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: uri})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	return res.Contents[0].Text
}

func TestRegister_ListsResourcesAndTemplates(t *testing.T) {
	session, reg := connect(t, catalog.NewStore(defaultItems()))
	ctx := context.Background()

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	uris := make([]string, 0, len(resources.Resources))
	for _, r := range resources.Resources {
		uris = append(uris, r.URI)
	}
	assert.ElementsMatch(t, []string{AboutURI, ExampleDocURI}, uris)

	templates, err := session.ListResourceTemplates(ctx, nil)
	require.NoError(t, err)
	patterns := make([]string, 0, len(templates.ResourceTemplates))
	for _, tmpl := range templates.ResourceTemplates {
		patterns = append(patterns, tmpl.URITemplate)
	}
	assert.ElementsMatch(t, []string{GreetingTemplateURI, ItemTemplateURI}, patterns)

	assert.Equal(t, []string{AboutURI, ExampleDocURI, GreetingTemplateURI, ItemTemplateURI}, reg.URIs())
}

func TestReadStaticResources(t *testing.T) {
	session, _ := connect(t, catalog.NewStore(defaultItems()))

	about := read(t, session, AboutURI)
	assert.Contains(t, about, "MCP Go Starter v1.0.0")
	assert.Contains(t, about, "Prompts with completions")

	doc := read(t, session, ExampleDocURI)
	assert.Contains(t, doc, "# Example Document")
	assert.Contains(t, doc, "```go")
}

func TestReadGreeting(t *testing.T) {
	session, _ := connect(t, catalog.NewStore(defaultItems()))
	require.Equal(t, "Hello, Ada! This greeting was generated just for you.", read(t, session, "greeting://Ada"))
}

func TestReadItem(t *testing.T) {
	session, _ := connect(t, catalog.NewStore(defaultItems()))

	want := "{\n  \"id\": \"2\",\n  \"name\": \"Gadget\",\n  \"description\": \"A fancy gadget\"\n}"
	require.Equal(t, want, read(t, session, "item://2"))
}

func TestReadItem_NotFound(t *testing.T) {
	session, _ := connect(t, catalog.NewStore(defaultItems()))

	_, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "item://99"})
	require.Error(t, err)
}

func TestReadItem_FollowsStoreReplace(t *testing.T) {
	store := catalog.NewStore(defaultItems())
	session, _ := connect(t, store)

	store.Replace([]domain.Item{{ID: "9", Name: "Sprocket", Description: "A new sprocket"}})

	assert.Contains(t, read(t, session, "item://9"), `"name": "Sprocket"`)
	_, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "item://1"})
	require.Error(t, err)
}

func TestItemJSON(t *testing.T) {
	store := catalog.NewStore(defaultItems())
	_, err := ItemJSON(store, "missing")
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	text, err := ItemJSON(store, "1")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"1\",\n  \"name\": \"Widget\",\n  \"description\": \"A useful widget\"\n}", text)
}

func TestMatchVar(t *testing.T) {
	id, ok := matchVar(itemTemplate, "item://42", "id")
	require.True(t, ok)
	assert.Equal(t, "42", id)

	_, ok = matchVar(itemTemplate, "greeting://42", "id")
	assert.False(t, ok)
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "dup", Version: "0.1.0"}, nil)
	reg := registry.NewResourceRegistry(server, nil, nil)
	resources := New(reg, catalog.NewStore(nil), nil)
	require.NoError(t, resources.Register())
	require.ErrorIs(t, resources.Register(), domain.ErrDuplicateName)
}
