package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	Rooms             []string      `mapstructure:"rooms" yaml:"rooms"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	SessionSecret     string        `mapstructure:"session_secret" yaml:"session_secret"`
	SessionTTL        time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MessageRateLimit  int           `mapstructure:"message_rate_limit" yaml:"message_rate_limit"`
}

// Default returns configuration with reasonable starter defaults. An empty
// SessionSecret means the app generates an ephemeral one at startup.
func Default() Config {
	return Config{
		Addr:              ":5000",
		Rooms:             []string{"General", "Academics", "Running Club", "Anime Club"},
		LogLevel:          "info",
		SessionTTL:        24 * time.Hour,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		MessageRateLimit:  0, // disabled
	}
}
