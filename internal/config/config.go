package config

import (
	"fmt"
	"strings"
)

// Config represents the complete application configuration
type Config struct {
	Telegram     TelegramConfig     `mapstructure:"telegram"`
	Radarr       ServiceConfig      `mapstructure:"radarr"`
	Sonarr       ServiceConfig      `mapstructure:"sonarr"`
	Lidarr       ServiceConfig      `mapstructure:"lidarr"`
	Transmission TransmissionConfig `mapstructure:"transmission"`
	Sabnzbd      ServiceConfig      `mapstructure:"sabnzbd"`
	Security     SecurityConfig     `mapstructure:"security"`
	Health       HealthConfig       `mapstructure:"health"`
	Logging      LoggingConfig      `mapstructure:"logging"`

	Language           string  `mapstructure:"language"`
	Admins             []int64 `mapstructure:"admins"`
	AllowList          []int64 `mapstructure:"allow_list"`
	AuthenticatedUsers []int64 `mapstructure:"authenticated_users"`
}

// TelegramConfig contains the bot credentials
type TelegramConfig struct {
	Token    string `mapstructure:"token"`
	Password string `mapstructure:"password"`
}

// ServiceConfig represents one Radarr/Sonarr/Lidarr/SABnzbd instance
type ServiceConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Features FeaturesConfig `mapstructure:"features"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Quality  QualityConfig  `mapstructure:"quality"`
}

// ServerConfig describes how to reach a service
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Port int    `mapstructure:"port"`
	Path string `mapstructure:"path"`
	SSL  bool   `mapstructure:"ssl"`
}

// AuthConfig holds service API credentials
type AuthConfig struct {
	APIKey string `mapstructure:"apikey"`
}

// FeaturesConfig holds per-service feature toggles
type FeaturesConfig struct {
	Search       bool `mapstructure:"search"`
	SeasonFolder bool `mapstructure:"seasonFolder"`
}

// PathsConfig controls root folder filtering
type PathsConfig struct {
	ExcludedRootFolders   []string `mapstructure:"excludedRootFolders"`
	NarrowRootFolderNames bool     `mapstructure:"narrowRootFolderNames"`
}

// QualityConfig controls quality profile filtering
type QualityConfig struct {
	ExcludedProfiles []string `mapstructure:"excludedProfiles"`
}

// TransmissionConfig describes the Transmission RPC endpoint
type TransmissionConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	SSL      bool   `mapstructure:"ssl"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// SecurityConfig holds access control toggles
type SecurityConfig struct {
	EnableAdmin     bool `mapstructure:"enableAdmin"`
	EnableAllowlist bool `mapstructure:"enableAllowlist"`
}

// HealthConfig controls the periodic health monitor
type HealthConfig struct {
	Enable          bool `mapstructure:"enable"`
	IntervalMinutes int  `mapstructure:"interval_minutes"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// URL builds the base URL for a service from its server block
func (s ServerConfig) URL() string {
	protocol := "http"
	if s.SSL {
		protocol = "https"
	}
	path := strings.TrimRight(s.Path, "/")
	return fmt.Sprintf("%s://%s:%d%s", protocol, s.Addr, s.Port, path)
}
