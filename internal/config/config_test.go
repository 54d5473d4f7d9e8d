package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.Password = "secret"
	cfg.Radarr.Enable = true
	cfg.Radarr.Server.Addr = "localhost"
	cfg.Radarr.Server.Port = 7878
	cfg.Radarr.Auth.APIKey = "key"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing telegram token",
			mutate:  func(c *Config) { c.Telegram.Token = "" },
			wantErr: "token must be set",
		},
		{
			name:    "missing telegram password",
			mutate:  func(c *Config) { c.Telegram.Password = "" },
			wantErr: "password must be set",
		},
		{
			name:    "enabled service without addr",
			mutate:  func(c *Config) { c.Radarr.Server.Addr = "" },
			wantErr: "server.addr must be set",
		},
		{
			name:    "enabled service without apikey",
			mutate:  func(c *Config) { c.Radarr.Auth.APIKey = "" },
			wantErr: "auth.apikey must be set",
		},
		{
			name:    "bad path",
			mutate:  func(c *Config) { c.Radarr.Server.Path = "radarr" },
			wantErr: "must start with /",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Radarr.Server.Port = 70000 },
			wantErr: "server.port must be between",
		},
		{
			name:    "transmission without host",
			mutate:  func(c *Config) { c.Transmission.Enable = true },
			wantErr: "host must be set",
		},
		{
			name: "health interval too small",
			mutate: func(c *Config) {
				c.Health.Enable = true
				c.Health.IntervalMinutes = 0
			},
			wantErr: "interval_minutes must be at least 1",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "level must be one of",
		},
		{
			name:    "no media service enabled",
			mutate:  func(c *Config) { c.Radarr.Enable = false },
			wantErr: "at least one of radarr, sonarr or lidarr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `telegram:
  token: "123:abc"
  password: "secret"
language: de-de
radarr:
  enable: true
  server:
    addr: localhost
    port: 7878
  auth:
    apikey: radarr-key
  paths:
    excludedRootFolders:
      - /movies-4k
    narrowRootFolderNames: true
authenticated_users:
  - 42
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Language != "de-de" {
		t.Errorf("language = %q, want de-de", cfg.Language)
	}
	if !cfg.Radarr.Enable || cfg.Radarr.Auth.APIKey != "radarr-key" {
		t.Errorf("radarr block not unmarshalled: %+v", cfg.Radarr)
	}
	if !cfg.Radarr.Paths.NarrowRootFolderNames {
		t.Error("narrowRootFolderNames should be true")
	}
	if len(cfg.AuthenticatedUsers) != 1 || cfg.AuthenticatedUsers[0] != 42 {
		t.Errorf("authenticated_users = %v, want [42]", cfg.AuthenticatedUsers)
	}
	// defaults still apply around the file
	if cfg.Health.IntervalMinutes != 15 {
		t.Errorf("health interval default = %d, want 15", cfg.Health.IntervalMinutes)
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		name   string
		server ServerConfig
		want   string
	}{
		{
			name:   "plain http",
			server: ServerConfig{Addr: "localhost", Port: 7878},
			want:   "http://localhost:7878",
		},
		{
			name:   "https with path",
			server: ServerConfig{Addr: "media.local", Port: 443, Path: "/radarr", SSL: true},
			want:   "https://media.local:443/radarr",
		},
		{
			name:   "trailing slash trimmed",
			server: ServerConfig{Addr: "localhost", Port: 8989, Path: "/sonarr/"},
			want:   "http://localhost:8989/sonarr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.server.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}
