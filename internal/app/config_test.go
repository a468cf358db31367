package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpstarter/internal/domain"
)

func newTestFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", domain.DefaultHTTPPort, "")
	flags.String("host", domain.DefaultHTTPHost, "")
	flags.String("log-level", domain.DefaultLogLevel, "")
	flags.String("items", "", "")
	flags.Bool("unrelated", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(ConfigOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultServeConfig(), cfg)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestLoadConfig_TaskDefaults(t *testing.T) {
	cfg, err := LoadConfig(ConfigOptions{Defaults: DefaultTaskConfig()})
	require.NoError(t, err)
	assert.Equal(t, domain.TransportHTTP, cfg.Transport)
	assert.Equal(t, "127.0.0.1:8000", cfg.Addr())
}

func TestLoadConfig_GreetingFromEnv(t *testing.T) {
	t.Setenv(domain.GreetingEnvVar, "Howdy")

	cfg, err := LoadConfig(ConfigOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Howdy", cfg.Greeting)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcpstarter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
transport: http
port: 4100
greeting: Hi
step_delay: 250ms
task_ttl: 1m
allowed_origins:
  - https://console.example.com
`), 0o600))

	cfg, err := LoadConfig(ConfigOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, domain.TransportHTTP, cfg.Transport)
	assert.Equal(t, 4100, cfg.Port)
	assert.Equal(t, "Hi", cfg.Greeting)
	assert.Equal(t, 250*time.Millisecond, cfg.StepDelay)
	assert.Equal(t, time.Minute, cfg.TaskTTL)
	assert.Equal(t, []string{"https://console.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcpstarter.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 4100\nhost = \"10.0.0.1\"\n"), 0o600))
	t.Setenv("MCP_PORT", "4200")

	cfg, err := LoadConfig(ConfigOptions{File: path, Flags: newTestFlags(t)})
	require.NoError(t, err)
	assert.Equal(t, 4200, cfg.Port, "env beats file")
	assert.Equal(t, "10.0.0.1", cfg.Host, "file beats unchanged flag")

	cfg, err = LoadConfig(ConfigOptions{File: path, Flags: newTestFlags(t, "--port", "4300")})
	require.NoError(t, err)
	assert.Equal(t, 4300, cfg.Port, "changed flag beats env")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(ConfigOptions{File: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: grpc\nport: 0\nlog_level: loud\n"), 0o600))

	_, err := LoadConfig(ConfigOptions{File: path})
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidArgument, code)
	assert.Contains(t, err.Error(), "transport")
	assert.Contains(t, err.Error(), "port")
	assert.Contains(t, err.Error(), "log level")
}

func TestNewBaseLogger(t *testing.T) {
	logger, err := NewBaseLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewBaseLogger("verbose")
	require.Error(t, err)
}
