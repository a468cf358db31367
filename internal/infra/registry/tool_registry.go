package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
)

// ToolRegistry tracks the tools exposed by a server. Registration is
// serialized so that concurrent handlers never observe a partially inserted
// tool, and duplicate names are rejected instead of silently replaced.
type ToolRegistry struct {
	server  *mcp.Server
	emitter domain.ListChangeEmitter
	logger  *zap.Logger

	mu    sync.RWMutex
	tools map[string]*mcp.Tool
}

func NewToolRegistry(server *mcp.Server, emitter domain.ListChangeEmitter, logger *zap.Logger) *ToolRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToolRegistry{
		server:  server,
		emitter: emitter,
		logger:  logger.Named("tool_registry"),
		tools:   make(map[string]*mcp.Tool),
	}
}

// AddTool registers a typed tool. The SDK infers missing schemas from In and
// Out and validates arguments before h runs.
func AddTool[In, Out any](r *ToolRegistry, tool *mcp.Tool, h mcp.ToolHandlerFor[In, Out]) error {
	return r.add(tool, func() {
		mcp.AddTool(r.server, tool, h)
	})
}

// AddToolHandler registers a tool with a raw handler. The tool must carry an
// object input schema.
func (r *ToolRegistry) AddToolHandler(tool *mcp.Tool, h mcp.ToolHandler) error {
	if tool != nil && !isObjectSchema(tool.InputSchema) {
		return domain.E(domain.CodeInvalidArgument, "registry.AddToolHandler", fmt.Sprintf("tool %q needs an object input schema", tool.Name), nil)
	}
	return r.add(tool, func() {
		r.server.AddTool(tool, h)
	})
}

func (r *ToolRegistry) add(tool *mcp.Tool, register func()) error {
	if tool == nil || tool.Name == "" {
		return domain.E(domain.CodeInvalidArgument, "registry.AddTool", "tool name is required", nil)
	}

	r.mu.Lock()
	if _, exists := r.tools[tool.Name]; exists {
		r.mu.Unlock()
		return fmt.Errorf("tool %q: %w", tool.Name, domain.ErrDuplicateName)
	}
	register()
	r.tools[tool.Name] = tool
	r.mu.Unlock()

	r.logger.Debug("tool registered", zap.String("tool", tool.Name))
	if r.emitter != nil {
		r.emitter.EmitListChange(domain.ListChangeEvent{Kind: domain.ListChangeTools, Name: tool.Name})
	}
	return nil
}

// Has reports whether name is registered.
func (r *ToolRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Get returns the registered tool definition.
func (r *ToolRegistry) Get(name string) (*mcp.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names in sorted order.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
