package tools

import "github.com/modelcontextprotocol/go-sdk/mcp"

// annotations builds tool hints. Every tool in this server is
// non-destructive, so DestructiveHint is always set explicitly to false.
func annotations(title string, readOnly, idempotent, openWorld bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:           title,
		ReadOnlyHint:    readOnly,
		DestructiveHint: boolPtr(false),
		IdempotentHint:  idempotent,
		OpenWorldHint:   boolPtr(openWorld),
	}
}

// Presets shared by tools with the same behavior profile.
var (
	readOnlyAnnotations          = func(title string) *mcp.ToolAnnotations { return annotations(title, true, true, false) }
	simulatedExternalAnnotations = func(title string) *mcp.ToolAnnotations { return annotations(title, true, false, false) }
	samplingAnnotations          = func(title string) *mcp.ToolAnnotations { return annotations(title, true, false, false) }
	stateMutatingAnnotations     = func(title string) *mcp.ToolAnnotations { return annotations(title, false, true, false) }
	pureComputationAnnotations   = func(title string) *mcp.ToolAnnotations { return annotations(title, true, true, false) }
)

func boolPtr(v bool) *bool {
	return &v
}
