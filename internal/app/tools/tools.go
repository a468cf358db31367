// Package tools holds the demo tool set of the starter server.
package tools

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/domain"
	"mcpstarter/internal/infra/elicitation"
	"mcpstarter/internal/infra/registry"
	"mcpstarter/internal/infra/sampling"
)

// State is the mutable server state shared by tool handlers.
type State struct {
	bonusLoaded atomic.Bool
}

func NewState() *State {
	return &State{}
}

// BonusLoaded reports whether bonus_calculator has been registered.
func (s *State) BonusLoaded() bool {
	return s.bonusLoaded.Load()
}

type Options struct {
	Greeting  string
	Steps     int
	StepDelay time.Duration
	// Random returns values in [0, 1). Defaults to math/rand/v2.
	Random   func() float64
	Sampler  *sampling.Client
	Elicitor *elicitation.Client
	Logger   *zap.Logger
}

// Toolset registers and serves the demo tools.
type Toolset struct {
	registry  *registry.ToolRegistry
	state     *State
	greeting  string
	steps     int
	stepDelay time.Duration
	random    func() float64
	sampler   *sampling.Client
	elicitor  *elicitation.Client
	logger    *zap.Logger
}

func New(reg *registry.ToolRegistry, state *State, opts Options) *Toolset {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if state == nil {
		state = NewState()
	}
	greeting := strings.TrimSpace(opts.Greeting)
	if greeting == "" {
		greeting = domain.DefaultGreeting
	}
	steps := opts.Steps
	if steps <= 0 {
		steps = domain.DefaultLongTaskSteps
	}
	stepDelay := opts.StepDelay
	if stepDelay < 0 {
		stepDelay = 0
	}
	random := opts.Random
	if random == nil {
		random = rand.Float64
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = sampling.NewClient(nil, logger)
	}
	elicitor := opts.Elicitor
	if elicitor == nil {
		elicitor = elicitation.NewClient(nil, logger)
	}
	return &Toolset{
		registry:  reg,
		state:     state,
		greeting:  greeting,
		steps:     steps,
		stepDelay: stepDelay,
		random:    random,
		sampler:   sampler,
		elicitor:  elicitor,
		logger:    logger.Named("tools"),
	}
}

// Register adds every tool available at startup. bonus_calculator is only
// added later by load_bonus_tool.
func (t *Toolset) Register() error {
	steps := []func() error{
		func() error { return registry.AddTool(t.registry, helloTool(), t.hello) },
		func() error { return registry.AddTool(t.registry, weatherTool(), t.getWeather) },
		func() error { return registry.AddTool(t.registry, askLLMTool(), t.askLLM) },
		func() error { return registry.AddTool(t.registry, longTaskTool(), t.longTask) },
		func() error { return registry.AddTool(t.registry, loadBonusTool(), t.loadBonus) },
		func() error { return registry.AddTool(t.registry, confirmActionTool(), t.confirmAction) },
		func() error { return registry.AddTool(t.registry, feedbackTool(), t.getFeedback) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
