package downloadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const sessionIDHeader = "X-Transmission-Session-Id"

// TransmissionClient talks to the Transmission RPC interface. It is safe
// for concurrent use; the negotiated session id is guarded by a mutex
// because the health monitor and the bot share one client.
type TransmissionClient struct {
	rpcURL   string
	username string
	password string
	http     *http.Client
	logger   *slog.Logger

	mu        sync.Mutex
	sessionID string
}

// TransmissionConfig holds configuration for the Transmission client
type TransmissionConfig struct {
	Host     string
	Port     int
	SSL      bool
	Username string
	Password string
	Timeout  time.Duration
	Logger   *slog.Logger
}

type rpcRequest struct {
	Method    string         `json:"method"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

type rpcResponse struct {
	Result    string         `json:"result"`
	Arguments map[string]any `json:"arguments"`
}

// NewTransmissionClient creates a new Transmission RPC client
func NewTransmissionClient(cfg TransmissionConfig) *TransmissionClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	scheme := "http"
	if cfg.SSL {
		scheme = "https"
	}

	return &TransmissionClient{
		rpcURL:   fmt.Sprintf("%s://%s:%d/transmission/rpc", scheme, cfg.Host, cfg.Port),
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   cfg.Logger.With("service", "transmission"),
	}
}

// Name returns the client name
func (c *TransmissionClient) Name() string {
	return "Transmission"
}

// call issues one RPC method. Transmission requires a session id header
// negotiated via HTTP 409; the first 409 stores the new id and the call
// is retried exactly once.
func (c *TransmissionClient) call(ctx context.Context, method string, args map[string]any) (*rpcResponse, error) {
	for attempt := 0; attempt < 2; attempt++ {
		body, err := json.Marshal(rpcRequest{Method: method, Arguments: args})
		if err != nil {
			return nil, fmt.Errorf("marshal rpc request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create rpc request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if id := c.session(); id != "" {
			req.Header.Set(sessionIDHeader, id)
		}
		if c.username != "" {
			req.SetBasicAuth(c.username, c.password)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute rpc request: %w", err)
		}

		if resp.StatusCode == http.StatusConflict {
			_ = resp.Body.Close()
			id := resp.Header.Get(sessionIDHeader)
			if id == "" {
				return nil, fmt.Errorf("received 409 but no session id in response")
			}
			c.setSession(id)
			c.logger.DebugContext(ctx, "negotiated transmission session id")
			continue
		}

		return c.parseResponse(resp)
	}

	return nil, fmt.Errorf("session id negotiation failed after retry")
}

func (c *TransmissionClient) session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *TransmissionClient) setSession(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = id
}

func (c *TransmissionClient) parseResponse(resp *http.Response) (*rpcResponse, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("transmission authentication failed")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rpc response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal rpc response: %w", err)
	}

	if rpcResp.Result != "success" {
		return nil, fmt.Errorf("rpc error: %s", rpcResp.Result)
	}

	return &rpcResp, nil
}

// Session returns the session-get arguments
func (c *TransmissionClient) Session(ctx context.Context) (map[string]any, error) {
	resp, err := c.call(ctx, "session-get", nil)
	if err != nil {
		return nil, err
	}
	return resp.Arguments, nil
}

// Version returns the daemon version reported by session-get
func (c *TransmissionClient) Version(ctx context.Context) (string, error) {
	args, err := c.Session(ctx)
	if err != nil {
		return "", err
	}
	version, _ := args["version"].(string)
	return version, nil
}

// AltSpeedEnabled reports whether the alternative speed limits (turtle
// mode) are active
func (c *TransmissionClient) AltSpeedEnabled(ctx context.Context) (bool, error) {
	args, err := c.Session(ctx)
	if err != nil {
		return false, err
	}
	enabled, _ := args["alt-speed-enabled"].(bool)
	return enabled, nil
}

// SetAltSpeed enables or disables the alternative speed limits
func (c *TransmissionClient) SetAltSpeed(ctx context.Context, enabled bool) error {
	_, err := c.call(ctx, "session-set", map[string]any{"alt-speed-enabled": enabled})
	if err != nil {
		return fmt.Errorf("set alt speed: %w", err)
	}

	c.logger.InfoContext(ctx, "alt speed updated", "enabled", enabled)
	return nil
}

// CheckStatus reports whether Transmission responds to session-get.
// It never returns an error; failures are logged and reported as false.
func (c *TransmissionClient) CheckStatus(ctx context.Context) bool {
	if _, err := c.Session(ctx); err != nil {
		c.logger.ErrorContext(ctx, "status check failed", "error", err)
		return false
	}
	return true
}
