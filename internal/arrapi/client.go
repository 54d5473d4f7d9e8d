package arrapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/addarr/addarr/pkg/httpclient"
)

// Client provides base functionality for all *arr API clients
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	apiVersion string
	http       *httpclient.Client
	logger     *slog.Logger

	excludedRootFolders   []string
	narrowRootFolderNames bool
	excludedProfiles      []string
}

// ClientConfig holds configuration for creating a Client
type ClientConfig struct {
	Name       string
	BaseURL    string
	APIKey     string
	APIVersion string // "v1" for Lidarr, "v3" for Sonarr/Radarr
	Timeout    time.Duration
	SkipTLS    bool
	Logger     *slog.Logger

	// Root folders matching these entries are hidden from selection. When
	// NarrowRootFolderNames is set, entries match the path basename only.
	ExcludedRootFolders   []string
	NarrowRootFolderNames bool

	// Quality profiles with these names are hidden from selection.
	ExcludedProfiles []string
}

// NewClient creates a new *arr API client
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v3"
	}

	httpCfg := httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
		SkipTLSVerify:   cfg.SkipTLS,
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		name:                  cfg.Name,
		baseURL:               strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:                cfg.APIKey,
		apiVersion:            cfg.APIVersion,
		http:                  httpclient.New(httpCfg),
		logger:                logger.With("service", cfg.Name),
		excludedRootFolders:   cfg.ExcludedRootFolders,
		narrowRootFolderNames: cfg.NarrowRootFolderNames,
		excludedProfiles:      cfg.ExcludedProfiles,
	}
}

// Name returns the client name used in logs and user-facing messages
func (c *Client) Name() string {
	return c.name
}

// RootFolders retrieves the configured root folder paths, minus exclusions
func (c *Client) RootFolders(ctx context.Context) ([]string, error) {
	var folders []RootFolder
	if err := c.get(ctx, "rootFolder", &folders); err != nil {
		return nil, fmt.Errorf("get root folders: %w", err)
	}

	paths := make([]string, 0, len(folders))
	for _, f := range folders {
		paths = append(paths, f.Path)
	}

	return filterRootFolders(paths, c.excludedRootFolders, c.narrowRootFolderNames), nil
}

// QualityProfiles retrieves the available quality profiles, minus exclusions
func (c *Client) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	var profiles []QualityProfile
	if err := c.get(ctx, "qualityProfile", &profiles); err != nil {
		return nil, fmt.Errorf("get quality profiles: %w", err)
	}

	if len(c.excludedProfiles) == 0 {
		return profiles, nil
	}

	filtered := profiles[:0]
	for _, p := range profiles {
		excluded := false
		for _, name := range c.excludedProfiles {
			if strings.EqualFold(p.Name, name) {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// SystemStatus retrieves the system status information
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.get(ctx, "system/status", &status); err != nil {
		return nil, fmt.Errorf("get system status: %w", err)
	}

	c.logger.DebugContext(ctx, "retrieved system status",
		"app", status.AppName,
		"version", status.Version)

	return &status, nil
}

// CheckStatus reports whether the service responds to a status probe.
// It never returns an error; failures are logged and reported as false.
func (c *Client) CheckStatus(ctx context.Context) bool {
	if _, err := c.SystemStatus(ctx); err != nil {
		c.logger.ErrorContext(ctx, "status check failed", "error", err)
		return false
	}
	return true
}

// filterRootFolders drops paths listed in excluded. With narrow set, the
// comparison uses the path basename (trailing slashes stripped) instead of
// the full path.
func filterRootFolders(paths, excluded []string, narrow bool) []string {
	if len(excluded) == 0 {
		return paths
	}

	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		name := p
		if narrow {
			name = path.Base(strings.TrimRight(p, "/"))
		}
		skip := false
		for _, e := range excluded {
			if name == e {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, p)
		}
	}
	return kept
}

// apiURL constructs a full API URL from an endpoint path
func (c *Client) apiURL(endpoint string) string {
	return fmt.Sprintf("%s/api/%s/%s", c.baseURL, c.apiVersion, endpoint)
}

// request executes an API request with authentication and error handling.
// Non-2xx responses become an *HTTPError carrying the raw body so callers
// can classify vendor error arrays.
func (c *Client) request(ctx context.Context, method, endpoint string, body, result any) error {
	fullURL := c.apiURL(endpoint)

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = strings.NewReader(string(jsonData))
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.DebugContext(ctx, "API request",
		"method", method,
		"url", fullURL)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.DebugContext(ctx, "API error response",
			"status", resp.StatusCode,
			"body", string(bodyBytes))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Close closes the underlying HTTP client connections
func (c *Client) Close() {
	c.http.Close()
}

// get is a convenience method for GET requests
func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	return c.request(ctx, http.MethodGet, endpoint, nil, result)
}

// post is a convenience method for POST requests
func (c *Client) post(ctx context.Context, endpoint string, body, result any) error {
	return c.request(ctx, http.MethodPost, endpoint, body, result)
}

// delete is a convenience method for DELETE requests
func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil)
}
