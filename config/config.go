// Package config loads kbsync configuration: the reasoning service
// endpoint for the client side and the listen settings for the reference
// host. TOML on disk via viper, environment overrides under KBSYNC_.
package config

import "github.com/spf13/viper"

// Config is the root kbsync configuration.
type Config struct {
	Service ServiceConfig `mapstructure:"service" toml:"service"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// ServiceConfig configures the reasoning service connection and host.
type ServiceConfig struct {
	// URL of the reasoning service websocket endpoint (client side).
	URL string `mapstructure:"url" toml:"url"`

	// ListenAddr for `kbsync serve` (host side).
	ListenAddr string `mapstructure:"listen_addr" toml:"listen_addr"`

	// Per-connection request rate for the host. 0 disables limiting.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" toml:"burst"`

	// DialTimeoutSeconds bounds connection establishment.
	DialTimeoutSeconds int `mapstructure:"dial_timeout_seconds" toml:"dial_timeout_seconds"`
}

// LogConfig configures log output.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}

// Defaults
const (
	DefaultServiceURL  = "ws://localhost:8787/reason"
	DefaultListenAddr  = ":8787"
	DefaultDialTimeout = 10
)

// SetDefaults installs default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("service.url", DefaultServiceURL)
	v.SetDefault("service.listen_addr", DefaultListenAddr)
	v.SetDefault("service.requests_per_second", 0.0)
	v.SetDefault("service.burst", 1)
	v.SetDefault("service.dial_timeout_seconds", DefaultDialTimeout)
	v.SetDefault("log.json", false)
}
