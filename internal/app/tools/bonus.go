package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"mcpstarter/internal/infra/registry"
)

const bonusToolName = "bonus_calculator"

var calculatorOperations = []any{"add", "subtract", "multiply", "divide"}

type LoadBonusInput struct{}

type BonusCalculatorInput struct {
	A         float64 `json:"a" jsonschema:"First number"`
	B         float64 `json:"b" jsonschema:"Second number"`
	Operation string  `json:"operation" jsonschema:"Mathematical operation to perform"`
}

func loadBonusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "load_bonus_tool",
		Title:       "Load Bonus Tool",
		Description: "Dynamically loads a bonus tool that wasn't available at startup.",
		Annotations: stateMutatingAnnotations("Load Bonus Tool"),
		Icons:       emojiIcon(iconPackage),
	}
}

func bonusCalculatorTool() (*mcp.Tool, error) {
	schema, err := jsonschema.For[BonusCalculatorInput](nil)
	if err != nil {
		return nil, fmt.Errorf("bonus calculator schema: %w", err)
	}
	if op, ok := schema.Properties["operation"]; ok {
		op.Enum = calculatorOperations
	}
	return &mcp.Tool{
		Name:        bonusToolName,
		Title:       "Bonus Calculator",
		Description: "A calculator that was dynamically loaded.",
		InputSchema: schema,
		Icons:       emojiIcon(iconAbacus),
		Annotations: pureComputationAnnotations("Bonus Calculator"),
	}, nil
}

// loadBonus registers bonus_calculator exactly once, even when called
// concurrently.
func (t *Toolset) loadBonus(_ context.Context, _ *mcp.CallToolRequest, _ LoadBonusInput) (*mcp.CallToolResult, any, error) {
	if !t.state.bonusLoaded.CompareAndSwap(false, true) {
		return textResult("Bonus tool is already loaded! Try calling 'bonus_calculator'."), nil, nil
	}
	tool, err := bonusCalculatorTool()
	if err == nil {
		err = registry.AddTool(t.registry, tool, t.bonusCalculator)
	}
	if err != nil {
		t.state.bonusLoaded.Store(false)
		t.logger.Error("load bonus tool failed", zap.Error(err))
		return nil, nil, err
	}
	t.logger.Info("bonus tool loaded", zap.String("tool", bonusToolName))
	return textResult("Bonus tool 'bonus_calculator' has been loaded! Refresh your tools list to see it."), nil, nil
}

func (t *Toolset) bonusCalculator(_ context.Context, _ *mcp.CallToolRequest, in BonusCalculatorInput) (*mcp.CallToolResult, any, error) {
	result := Calculate(in.A, in.B, in.Operation)
	return textResult(fmt.Sprintf("%s %s %s = %s", formatNumber(in.A), in.Operation, formatNumber(in.B), formatNumber(result))), nil, nil
}

// Calculate applies op to a and b. Division by zero and unknown operations
// yield NaN.
func Calculate(a, b float64, op string) float64 {
	switch op {
	case "add":
		return a + b
	case "subtract":
		return a - b
	case "multiply":
		return a * b
	case "divide":
		if b == 0 {
			return math.NaN()
		}
		return a / b
	default:
		return math.NaN()
	}
}

// formatNumber renders floats the way calculator output has always looked:
// integral values keep a trailing ".0" and NaN prints as "nan".
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
