package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for errors and inconsistencies
func (c *Config) Validate() error {
	if err := c.validateTelegram(); err != nil {
		return fmt.Errorf("telegram config: %w", err)
	}

	for _, svc := range []struct {
		name string
		cfg  ServiceConfig
	}{
		{"radarr", c.Radarr},
		{"sonarr", c.Sonarr},
		{"lidarr", c.Lidarr},
		{"sabnzbd", c.Sabnzbd},
	} {
		if err := validateService(svc.name, svc.cfg); err != nil {
			return err
		}
	}

	if c.Transmission.Enable && c.Transmission.Host == "" {
		return fmt.Errorf("transmission: host must be set when enabled")
	}

	if err := c.validateHealth(); err != nil {
		return fmt.Errorf("health config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	// Ensure at least one media service is configured
	hasService := c.Radarr.Enable || c.Sonarr.Enable || c.Lidarr.Enable
	if !hasService {
		return fmt.Errorf("at least one of radarr, sonarr or lidarr must be enabled")
	}

	return nil
}

func (c *Config) validateTelegram() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("token must be set")
	}
	if c.Telegram.Password == "" {
		return fmt.Errorf("password must be set")
	}
	return nil
}

func validateService(name string, cfg ServiceConfig) error {
	if !cfg.Enable {
		return nil
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("%s: server.addr must be set when enabled", name)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%s: server.port must be between 1 and 65535", name)
	}
	if cfg.Auth.APIKey == "" {
		return fmt.Errorf("%s: auth.apikey must be set when enabled", name)
	}
	if cfg.Server.Path != "" && !strings.HasPrefix(cfg.Server.Path, "/") {
		return fmt.Errorf("%s: server.path must start with /", name)
	}
	return nil
}

func (c *Config) validateHealth() error {
	if !c.Health.Enable {
		return nil
	}
	if c.Health.IntervalMinutes < 1 {
		return fmt.Errorf("interval_minutes must be at least 1")
	}
	if c.Health.IntervalMinutes > 24*60 {
		return fmt.Errorf("interval_minutes must not exceed 24 hours")
	}
	return nil
}

func (c *Config) validateLogging() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	logLevel := strings.ToLower(c.Logging.Level)
	valid := false
	for _, level := range validLogLevels {
		if logLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("level must be one of: %s", strings.Join(validLogLevels, ", "))
	}

	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("format must be json or text")
	}
	return nil
}
