package downloadclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/addarr/addarr/pkg/httpclient"
)

// SABnzbdClient talks to the SABnzbd JSON API
type SABnzbdClient struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	logger  *slog.Logger
}

// SABnzbdConfig holds configuration for the SABnzbd client
type SABnzbdConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	SkipTLS bool
	Logger  *slog.Logger
}

// SABnzbdSlot represents an item in the SABnzbd queue
type SABnzbdSlot struct {
	NzoID      string `json:"nzo_id"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	Size       string `json:"size"`
	Sizeleft   string `json:"sizeleft"`
	Percentage string `json:"percentage"`
	Category   string `json:"cat"`
}

// SABnzbdQueue is the queue payload of the queue API response
type SABnzbdQueue struct {
	Paused     bool          `json:"paused"`
	Speed      string        `json:"speed"`
	SpeedLimit string        `json:"speedlimit"`
	Slots      []SABnzbdSlot `json:"slots"`
}

type sabnzbdQueueResponse struct {
	Queue SABnzbdQueue `json:"queue"`
}

type sabnzbdVersionResponse struct {
	Version string `json:"version"`
}

type sabnzbdStatusResponse struct {
	Status bool `json:"status"`
}

// NewSABnzbdClient creates a new SABnzbd client
func NewSABnzbdClient(cfg SABnzbdConfig) *SABnzbdClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpCfg := httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
		SkipTLSVerify:   cfg.SkipTLS,
	}

	return &SABnzbdClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    httpclient.New(httpCfg),
		logger:  cfg.Logger.With("service", "sabnzbd"),
	}
}

// Name returns the client name
func (c *SABnzbdClient) Name() string {
	return "SABnzbd"
}

// buildURL constructs API URL with mode and apikey parameters
func (c *SABnzbdClient) buildURL(mode string, extraParams map[string]string) string {
	params := url.Values{}
	params.Set("mode", mode)
	params.Set("apikey", c.apiKey)
	params.Set("output", "json")

	for k, v := range extraParams {
		params.Set(k, v)
	}

	return fmt.Sprintf("%s/api?%s", c.baseURL, params.Encode())
}

// Version returns the SABnzbd version string
func (c *SABnzbdClient) Version(ctx context.Context) (string, error) {
	var versionResp sabnzbdVersionResponse
	if err := c.http.GetJSON(ctx, c.buildURL("version", nil), &versionResp); err != nil {
		return "", fmt.Errorf("get version: %w", err)
	}
	return versionResp.Version, nil
}

// Queue retrieves the current download queue
func (c *SABnzbdClient) Queue(ctx context.Context) (*SABnzbdQueue, error) {
	var queueResp sabnzbdQueueResponse
	if err := c.http.GetJSON(ctx, c.buildURL("queue", nil), &queueResp); err != nil {
		return nil, fmt.Errorf("get queue: %w", err)
	}

	c.logger.DebugContext(ctx, "fetched sabnzbd queue", "count", len(queueResp.Queue.Slots))
	return &queueResp.Queue, nil
}

// SetSpeedLimit sets the download speed limit as a percentage of the
// configured line speed
func (c *SABnzbdClient) SetSpeedLimit(ctx context.Context, percentage int) error {
	params := map[string]string{
		"name":  "speedlimit",
		"value": strconv.Itoa(percentage),
	}
	var statusResp sabnzbdStatusResponse
	if err := c.http.GetJSON(ctx, c.buildURL("config", params), &statusResp); err != nil {
		return fmt.Errorf("set speed limit: %w", err)
	}

	c.logger.InfoContext(ctx, "speed limit updated", "percentage", percentage)
	return nil
}

// PauseQueue pauses the whole download queue
func (c *SABnzbdClient) PauseQueue(ctx context.Context) error {
	var statusResp sabnzbdStatusResponse
	if err := c.http.GetJSON(ctx, c.buildURL("pause", nil), &statusResp); err != nil {
		return fmt.Errorf("pause queue: %w", err)
	}

	c.logger.InfoContext(ctx, "queue paused")
	return nil
}

// ResumeQueue resumes the whole download queue
func (c *SABnzbdClient) ResumeQueue(ctx context.Context) error {
	var statusResp sabnzbdStatusResponse
	if err := c.http.GetJSON(ctx, c.buildURL("resume", nil), &statusResp); err != nil {
		return fmt.Errorf("resume queue: %w", err)
	}

	c.logger.InfoContext(ctx, "queue resumed")
	return nil
}

// CheckStatus reports whether SABnzbd responds to a version probe.
// It never returns an error; failures are logged and reported as false.
func (c *SABnzbdClient) CheckStatus(ctx context.Context) bool {
	if _, err := c.Version(ctx); err != nil {
		c.logger.ErrorContext(ctx, "status check failed", "error", err)
		return false
	}
	return true
}

// Close closes the underlying HTTP client connections
func (c *SABnzbdClient) Close() {
	c.http.Close()
}
