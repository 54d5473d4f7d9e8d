package bot

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/addarr/addarr/internal/config"
)

// Authenticator tracks which chat ids have proven the bot password and
// persists that set back into the config file so it survives restarts.
type Authenticator struct {
	mu         sync.Mutex
	password   string
	users      map[int64]bool
	admins     map[int64]bool
	allowList  map[int64]bool
	adminOnly  bool
	allowGate  bool
	configPath string
	logger     *slog.Logger
}

// NewAuthenticator builds the access-control state from config. configPath
// may be empty, in which case authenticated users are not persisted.
func NewAuthenticator(cfg *config.Config, configPath string, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Authenticator{
		password:   cfg.Telegram.Password,
		users:      make(map[int64]bool),
		admins:     make(map[int64]bool),
		allowList:  make(map[int64]bool),
		adminOnly:  cfg.Security.EnableAdmin,
		allowGate:  cfg.Security.EnableAllowlist,
		configPath: configPath,
		logger:     logger.With("component", "auth"),
	}
	for _, id := range cfg.AuthenticatedUsers {
		a.users[id] = true
	}
	for _, id := range cfg.Admins {
		a.admins[id] = true
	}
	for _, id := range cfg.AllowList {
		a.allowList[id] = true
	}
	return a
}

// IsAuthenticated reports whether id has supplied the password (or was
// pre-seeded in config)
func (a *Authenticator) IsAuthenticated(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.users[id]
}

// IsAdmin reports whether id is listed as an admin
func (a *Authenticator) IsAdmin(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.admins[id]
}

// Allowed applies the allow-list gate. When the gate is disabled every id
// passes.
func (a *Authenticator) Allowed(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.allowGate {
		return true
	}
	return a.allowList[id] || a.admins[id]
}

// AdminRequired reports whether admin-only mode is on
func (a *Authenticator) AdminRequired() bool {
	return a.adminOnly
}

// Authenticate checks password for id. On a match the id is added to the
// authenticated set and persisted; a persistence failure keeps the
// in-memory grant and is only logged.
func (a *Authenticator) Authenticate(id int64, password string) bool {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		a.logger.Warn("failed authentication attempt", "chat_id", id)
		return false
	}

	a.mu.Lock()
	a.users[id] = true
	users := make([]int64, 0, len(a.users))
	for uid := range a.users {
		users = append(users, uid)
	}
	a.mu.Unlock()

	if err := a.persist(users); err != nil {
		a.logger.Error("persisting authenticated users failed", "error", err)
	}
	a.logger.Info("user authenticated", "chat_id", id)
	return true
}

// persist rewrites the authenticated_users key in the config file,
// leaving every other key untouched
func (a *Authenticator) persist(users []int64) error {
	if a.configPath == "" {
		return nil
	}

	data, err := os.ReadFile(a.configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}

	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	doc["authenticated_users"] = users

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(a.configPath, out, 0o600)
}
