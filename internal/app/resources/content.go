package resources

import "mcpstarter/internal/domain"

var aboutText = "MCP Go Starter v" + domain.ServerVersion + `

This is a feature-complete MCP server demonstrating:
- Tools with annotations and structured output
- Resources (static and dynamic)
- Resource templates
- Prompts with completions
- Sampling, progress updates, and dynamic tool loading

For more information, visit: https://modelcontextprotocol.io`

const exampleDocument = "# Example Document\n" +
	"\n" +
	"This is an example markdown document served as an MCP resource.\n" +
	"\n" +
	"## Features\n" +
	"\n" +
	"- **Bold text** and *italic text*\n" +
	"- Lists and formatting\n" +
	"- Code blocks\n" +
	"\n" +
	"```go\n" +
	"hello := \"world\"\n" +
	"```\n" +
	"\n" +
	"## Links\n" +
	"\n" +
	"- [MCP Documentation](https://modelcontextprotocol.io)\n" +
	"- [Go SDK](https://github.com/modelcontextprotocol/go-sdk)\n"
