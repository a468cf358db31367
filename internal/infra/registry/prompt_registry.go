package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
)

type PromptRegistry struct {
	server  *mcp.Server
	emitter domain.ListChangeEmitter
	logger  *zap.Logger

	mu      sync.RWMutex
	prompts map[string]*mcp.Prompt
}

func NewPromptRegistry(server *mcp.Server, emitter domain.ListChangeEmitter, logger *zap.Logger) *PromptRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromptRegistry{
		server:  server,
		emitter: emitter,
		logger:  logger.Named("prompt_registry"),
		prompts: make(map[string]*mcp.Prompt),
	}
}

func (r *PromptRegistry) AddPrompt(prompt *mcp.Prompt, h mcp.PromptHandler) error {
	if prompt == nil || prompt.Name == "" {
		return domain.E(domain.CodeInvalidArgument, "registry.AddPrompt", "prompt name is required", nil)
	}

	r.mu.Lock()
	if _, exists := r.prompts[prompt.Name]; exists {
		r.mu.Unlock()
		return fmt.Errorf("prompt %q: %w", prompt.Name, domain.ErrDuplicateName)
	}
	r.server.AddPrompt(prompt, h)
	r.prompts[prompt.Name] = prompt
	r.mu.Unlock()

	r.logger.Debug("prompt registered", zap.String("prompt", prompt.Name))
	if r.emitter != nil {
		r.emitter.EmitListChange(domain.ListChangeEvent{Kind: domain.ListChangePrompts, Name: prompt.Name})
	}
	return nil
}

// Get returns the registered prompt definition.
func (r *PromptRegistry) Get(name string) (*mcp.Prompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prompt, ok := r.prompts[name]
	return prompt, ok
}

func (r *PromptRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.prompts))
	for name := range r.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
