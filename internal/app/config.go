package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mcpstarter/internal/domain"
)

// ConfigOptions selects the sources LoadConfig merges. Precedence, highest
// first: changed flags, MCP_* environment variables, the config file,
// defaults.
type ConfigOptions struct {
	File     string
	Flags    *pflag.FlagSet
	Defaults domain.ServeConfig
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"host":         "host",
	"port":         "port",
	"items":        "items",
	"watch-items":  "watch_items",
	"log-level":    "log_level",
	"metrics-addr": "metrics_addr",
	"step-delay":   "step_delay",
	"task-store":   "task_store",
	"task-ttl":     "task_ttl",
	"greeting":     "greeting",
}

// DefaultServeConfig returns the main server defaults.
func DefaultServeConfig() domain.ServeConfig {
	return domain.ServeConfig{
		Transport: domain.DefaultTransport,
		Host:      domain.DefaultHTTPHost,
		Port:      domain.DefaultHTTPPort,
		Greeting:  domain.DefaultGreeting,
		LogLevel:  domain.DefaultLogLevel,
		StepDelay: domain.DefaultStepDelay,
	}
}

// DefaultTaskConfig returns the task server defaults.
func DefaultTaskConfig() domain.ServeConfig {
	cfg := DefaultServeConfig()
	cfg.Transport = domain.TransportHTTP
	cfg.Host = domain.DefaultTaskHTTPHost
	cfg.Port = domain.DefaultTaskHTTPPort
	return cfg
}

func newConfigViper(defaults domain.ServeConfig) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(domain.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("transport", defaults.Transport)
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("greeting", defaults.Greeting)
	v.SetDefault("items", defaults.ItemsPath)
	v.SetDefault("watch_items", defaults.WatchItems)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("metrics_addr", defaults.MetricsAddr)
	v.SetDefault("step_delay", defaults.StepDelay)
	v.SetDefault("task_store", defaults.TaskStore)
	v.SetDefault("task_ttl", defaults.TaskTTL)
	v.SetDefault("allowed_origins", append([]string{}, defaults.AllowedOrigins...))
	return v
}

// LoadConfig resolves the runtime configuration.
func LoadConfig(opts ConfigOptions) (domain.ServeConfig, error) {
	defaults := opts.Defaults
	if defaults.Transport == "" {
		defaults = DefaultServeConfig()
	}
	v := newConfigViper(defaults)

	if file := strings.TrimSpace(opts.File); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return domain.ServeConfig{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if opts.Flags != nil {
		var bindErr error
		opts.Flags.VisitAll(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return domain.ServeConfig{}, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var cfg domain.ServeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.ServeConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = nil
	}
	if err := validateConfig(cfg); err != nil {
		return domain.ServeConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg domain.ServeConfig) error {
	var problems []string
	switch cfg.Transport {
	case domain.TransportStdio, domain.TransportHTTP:
	default:
		problems = append(problems, fmt.Sprintf("transport must be %q or %q", domain.TransportStdio, domain.TransportHTTP))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		problems = append(problems, "port must be between 1 and 65535")
	}
	if cfg.StepDelay < 0 {
		problems = append(problems, "step_delay must not be negative")
	}
	if cfg.TaskTTL < 0 || (cfg.TaskTTL > 0 && cfg.TaskTTL < time.Millisecond) {
		problems = append(problems, "task_ttl must be zero or at least 1ms")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return domain.E(domain.CodeInvalidArgument, "app.LoadConfig", strings.Join(problems, "; "), nil)
	}
	return nil
}
