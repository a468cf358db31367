package domain

import (
	"net"
	"strconv"
	"time"
)

// ServeConfig is the resolved runtime configuration of a server process.
type ServeConfig struct {
	Transport   string        `mapstructure:"transport"`
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Greeting    string        `mapstructure:"greeting"`
	ItemsPath   string        `mapstructure:"items"`
	WatchItems  bool          `mapstructure:"watch_items"`
	LogLevel    string        `mapstructure:"log_level"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
	StepDelay   time.Duration `mapstructure:"step_delay"`
	TaskStore   string        `mapstructure:"task_store"`
	TaskTTL     time.Duration `mapstructure:"task_ttl"`
	// AllowedOrigins lists extra browser origins, besides the server's own,
	// that may open the WebSocket endpoint. "*" allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns the HTTP listen address.
func (c ServeConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
