// Package config holds runtime settings for the netauto CLI, sourced from an
// optional YAML config file and NETAUTO_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Settings are the process-wide defaults. Flags may override individual
// values at the command layer.
type Settings struct {
	Inventory        string        `mapstructure:"inventory"`
	BackupsDir       string        `mapstructure:"backups_dir"`
	LogsDir          string        `mapstructure:"logs_dir"`
	LogLevel         string        `mapstructure:"log_level"`
	DefaultPingCount int           `mapstructure:"default_ping_count"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	Transport        string        `mapstructure:"transport"`
}

// Load reads settings from the given config file (optional; an empty path
// or a missing file yields defaults) and the NETAUTO_* environment.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("inventory", "devices.yaml")
	v.SetDefault("backups_dir", "backups")
	v.SetDefault("logs_dir", "logs")
	v.SetDefault("log_level", "info")
	v.SetDefault("default_ping_count", 5)
	v.SetDefault("connect_timeout", 30*time.Second)
	v.SetDefault("transport", "scrapli")

	v.SetEnvPrefix("netauto")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if s.DefaultPingCount < 1 {
		s.DefaultPingCount = 5
	}
	return &s, nil
}
