package app

const serverInstructions = `# MCP Go Starter Server

A demonstration MCP server showcasing the Go SDK.

## Available Tools

### Greeting & Demos
- **hello**: Simple greeting - use to test connectivity
- **get_weather**: Returns simulated weather data
- **long_task**: Demonstrates progress reporting (takes ~5 seconds)

### LLM Interaction
- **ask_llm**: Invoke LLM sampling to ask questions (requires client support)

### Dynamic Features
- **load_bonus_tool**: Dynamically adds a calculator tool at runtime
- **bonus_calculator**: Available after calling load_bonus_tool

### User Input
- **confirm_action**: Asks the user to confirm an action through a form
- **get_feedback**: Opens a feedback form in the browser

## Available Resources

- **about://server**: Server information
- **doc://example**: An example markdown document
- **greeting://{name}**: A personalized greeting (e.g., greeting://Alice)
- **item://{id}**: Item data by ID (e.g., item://1)

## Available Prompts

- **greet**: Generates a personalized greeting
- **code_review**: Structured code review prompt

## Recommended Workflows

1. **Testing Connection**: Call ` + "`hello`" + ` with your name to verify the server is responding
2. **Weather Demo**: Call ` + "`get_weather`" + ` with a location to see structured output
3. **Progress Demo**: Call ` + "`long_task`" + ` to see progress notifications
4. **Dynamic Loading**: Call ` + "`load_bonus_tool`" + `, then refresh tools to see ` + "`bonus_calculator`" + `

## Tool Annotations

All tools include annotations indicating:
- Whether they modify state (readOnlyHint)
- If they're safe to retry (idempotentHint)
- Whether they access external systems (openWorldHint)

Use these hints to make informed decisions about tool usage.`

const taskServerInstructions = `# MCP Go Starter Task Server

Experimental task-based execution. Task tools return a task handle
immediately; poll it with tasks_get and fetch the outcome with tasks_result.

- **data_processing**: Processes data in chunks and can be cancelled
- **confirm_action**: Asks the user for confirmation while the task waits
- **generate_content**: Generates text through client sampling
- **tasks_get**, **tasks_result**, **tasks_list**, **tasks_cancel**: task lifecycle`
