package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables. The
// second return value is the resolved config file path, empty when the
// process runs on defaults and env vars alone.
func Load(configPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	// Configure viper for env vars
	v.SetEnvPrefix("ADDARR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Determine config file path
	if configPath == "" {
		configPath = os.Getenv("ADDARR_CONFIG")
	}
	if configPath == "" {
		defaultPaths := []string{"config.yaml", "config.yml", "/app/config.yaml"}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}
	// If no file found, continue with defaults and env vars

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, configPath, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "en-us")

	v.SetDefault("radarr.server.path", "")
	v.SetDefault("radarr.features.search", true)
	v.SetDefault("sonarr.server.path", "")
	v.SetDefault("sonarr.features.search", true)
	v.SetDefault("sonarr.features.seasonFolder", true)
	v.SetDefault("lidarr.server.path", "")
	v.SetDefault("lidarr.features.search", true)

	v.SetDefault("transmission.host", "localhost")
	v.SetDefault("transmission.port", 9091)

	v.SetDefault("security.enableAdmin", false)
	v.SetDefault("security.enableAllowlist", false)

	v.SetDefault("health.enable", true)
	v.SetDefault("health.interval_minutes", 15)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
