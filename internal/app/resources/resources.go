// Package resources serves the static documents and URI templates of the
// starter server.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/registry"
)

const (
	AboutURI            = "about://server"
	ExampleDocURI       = "doc://example"
	GreetingTemplateURI = "greeting://{name}"
	ItemTemplateURI     = "item://{id}"
)

var (
	greetingTemplate = uritemplate.MustNew(GreetingTemplateURI)
	itemTemplate     = uritemplate.MustNew(ItemTemplateURI)
)

// Resources registers and serves the demo resources.
type Resources struct {
	registry *registry.ResourceRegistry
	items    domain.ItemStore
	logger   *zap.Logger
}

func New(reg *registry.ResourceRegistry, items domain.ItemStore, logger *zap.Logger) *Resources {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resources{
		registry: reg,
		items:    items,
		logger:   logger.Named("resources"),
	}
}

func (r *Resources) Register() error {
	if err := r.registry.AddResource(&mcp.Resource{
		URI:         AboutURI,
		Name:        "About",
		Description: "Information about this MCP server",
		MIMEType:    "text/plain",
	}, r.readAbout); err != nil {
		return err
	}
	if err := r.registry.AddResource(&mcp.Resource{
		URI:         ExampleDocURI,
		Name:        "Example Document",
		Description: "An example document resource",
		MIMEType:    "text/markdown",
	}, r.readExample); err != nil {
		return err
	}
	if err := r.registry.AddTemplate(&mcp.ResourceTemplate{
		URITemplate: GreetingTemplateURI,
		Name:        "Personalized Greeting",
		Description: "A personalized greeting for a specific person",
		MIMEType:    "text/plain",
	}, r.readGreeting); err != nil {
		return err
	}
	return r.registry.AddTemplate(&mcp.ResourceTemplate{
		URITemplate: ItemTemplateURI,
		Name:        "Item Data",
		Description: "Data for a specific item by ID",
		MIMEType:    "application/json",
	}, r.readItem)
}

// ItemURI returns the resource URI of an item.
func ItemURI(id string) string {
	return "item://" + id
}

func (r *Resources) readAbout(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return textContents(req.Params.URI, "text/plain", aboutText), nil
}

func (r *Resources) readExample(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return textContents(req.Params.URI, "text/markdown", exampleDocument), nil
}

func (r *Resources) readGreeting(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	name, ok := matchVar(greetingTemplate, req.Params.URI, "name")
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return textContents(req.Params.URI, "text/plain", Greeting(name)), nil
}

func (r *Resources) readItem(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := matchVar(itemTemplate, req.Params.URI, "id")
	if !ok || r.items == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	text, err := ItemJSON(r.items, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			r.logger.Debug("item not found", zap.String("id", id))
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, err
	}
	return textContents(req.Params.URI, "application/json", text), nil
}

// Greeting is the body of greeting://{name}.
func Greeting(name string) string {
	return fmt.Sprintf("Hello, %s! This greeting was generated just for you.", name)
}

// ItemJSON renders an item as indented JSON with fields id, name and
// description.
func ItemJSON(items domain.ItemStore, id string) (string, error) {
	item, err := items.Get(id)
	if err != nil {
		return "", err
	}
	raw, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode item %s: %w", id, err)
	}
	return string(raw), nil
}

func matchVar(tmpl *uritemplate.Template, uri, name string) (string, bool) {
	values := tmpl.Match(uri)
	if values == nil {
		return "", false
	}
	value := strings.TrimSpace(values.Get(name).String())
	if value == "" {
		return "", false
	}
	return value, true
}

func textContents(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}
