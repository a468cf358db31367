package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
)

// ResourceRegistry tracks static resources and URI templates. Static URIs
// and template patterns share one namespace.
type ResourceRegistry struct {
	server  *mcp.Server
	emitter domain.ListChangeEmitter
	logger  *zap.Logger

	mu        sync.RWMutex
	resources map[string]*mcp.Resource
	templates map[string]*mcp.ResourceTemplate
}

func NewResourceRegistry(server *mcp.Server, emitter domain.ListChangeEmitter, logger *zap.Logger) *ResourceRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceRegistry{
		server:    server,
		emitter:   emitter,
		logger:    logger.Named("resource_registry"),
		resources: make(map[string]*mcp.Resource),
		templates: make(map[string]*mcp.ResourceTemplate),
	}
}

func (r *ResourceRegistry) AddResource(resource *mcp.Resource, h mcp.ResourceHandler) error {
	if resource == nil || resource.URI == "" {
		return domain.E(domain.CodeInvalidArgument, "registry.AddResource", "resource uri is required", nil)
	}

	r.mu.Lock()
	if r.existsLocked(resource.URI) {
		r.mu.Unlock()
		return fmt.Errorf("resource %q: %w", resource.URI, domain.ErrDuplicateName)
	}
	r.server.AddResource(resource, h)
	r.resources[resource.URI] = resource
	r.mu.Unlock()

	r.logger.Debug("resource registered", zap.String("uri", resource.URI))
	r.emit(resource.URI)
	return nil
}

func (r *ResourceRegistry) AddTemplate(template *mcp.ResourceTemplate, h mcp.ResourceHandler) error {
	if template == nil || template.URITemplate == "" {
		return domain.E(domain.CodeInvalidArgument, "registry.AddTemplate", "uri template is required", nil)
	}

	r.mu.Lock()
	if r.existsLocked(template.URITemplate) {
		r.mu.Unlock()
		return fmt.Errorf("resource template %q: %w", template.URITemplate, domain.ErrDuplicateName)
	}
	r.server.AddResourceTemplate(template, h)
	r.templates[template.URITemplate] = template
	r.mu.Unlock()

	r.logger.Debug("resource template registered", zap.String("uri_template", template.URITemplate))
	r.emit(template.URITemplate)
	return nil
}

// URIs returns static URIs followed by template patterns, each sorted.
func (r *ResourceRegistry) URIs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	static := make([]string, 0, len(r.resources))
	for uri := range r.resources {
		static = append(static, uri)
	}
	sort.Strings(static)
	templates := make([]string, 0, len(r.templates))
	for uri := range r.templates {
		templates = append(templates, uri)
	}
	sort.Strings(templates)
	return append(static, templates...)
}

func (r *ResourceRegistry) existsLocked(uri string) bool {
	if _, ok := r.resources[uri]; ok {
		return true
	}
	_, ok := r.templates[uri]
	return ok
}

func (r *ResourceRegistry) emit(name string) {
	if r.emitter != nil {
		r.emitter.EmitListChange(domain.ListChangeEvent{Kind: domain.ListChangeResources, Name: name})
	}
}
