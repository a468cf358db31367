package domain

import "time"

const (
	ServerName    = "mcp-go-starter"
	ServerVersion = "1.0.0"

	TaskServerName = "mcp-go-starter-tasks"

	DefaultTransport       = TransportStdio
	DefaultHTTPHost        = "0.0.0.0"
	DefaultHTTPPort        = 3000
	DefaultHTTPPath        = "/mcp"
	DefaultWebSocketPath   = "/mcp/ws"
	DefaultTaskHTTPHost    = "127.0.0.1"
	DefaultTaskHTTPPort    = 8000
	DefaultGreeting        = "Hello"
	DefaultLogLevel        = "info"
	DefaultLongTaskSteps   = 5
	DefaultStepDelay       = time.Second
	DefaultAskMaxTokens    = 100
	DefaultGenerateTokens  = 200
	DefaultDataChunks      = 5
	DefaultTaskListLimit   = 50
	DefaultTaskPollMillis  = 5000
	DefaultReloadDebounce  = 200 * time.Millisecond
	DefaultShutdownTimeout = 5 * time.Second

	GreetingEnvVar = "MCP_GREETING"
	EnvPrefix      = "MCP"

	FeedbackURL = "https://github.com/SamMorrowDrums/mcp-starters/issues/new?template=workshop-feedback.yml"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)
