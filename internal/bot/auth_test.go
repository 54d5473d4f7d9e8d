package bot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/addarr/addarr/internal/config"
	"github.com/addarr/addarr/internal/i18n"
	"github.com/addarr/addarr/internal/media"
)

// fakeSender records everything the bot tries to send
type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) messages(t *testing.T) []string {
	t.Helper()
	var texts []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

func testTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator("../../translations", "en-us", nil)
	require.NoError(t, err)
	return tr
}

func testBot(t *testing.T, cfg *config.Config, configPath string) (*Bot, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	b := newBot(sender, Deps{
		Media:      media.NewService(media.Deps{}),
		Auth:       NewAuthenticator(cfg, configPath, nil),
		Translator: testTranslator(t),
	})
	return b, sender
}

func commandMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 100,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(text)},
		},
	}
}

func TestRequireAuthSendsSingleRefusal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Password = "hunter2"
	b, sender := testBot(t, cfg, "")

	b.handleMessage(context.Background(), commandMessage(42, "/movie"))

	texts := sender.messages(t)
	require.Len(t, texts, 1, "unauthenticated command must produce exactly one reply")
	assert.Equal(t, "You are not authenticated. Use /auth first.", texts[0])
}

func TestAuthenticatedUserPassesGate(t *testing.T) {
	cfg := &config.Config{AuthenticatedUsers: []int64{42}}
	cfg.Telegram.Password = "hunter2"
	b, sender := testBot(t, cfg, "")

	// /status is gated; a nil health monitor would panic, so use a command
	// whose handler only needs the media service check
	b.handleMessage(context.Background(), commandMessage(42, "/transmission"))

	texts := sender.messages(t)
	require.Len(t, texts, 1)
	assert.NotEqual(t, "You are not authenticated. Use /auth first.", texts[0])
}

func TestPasswordFlow(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Password = "hunter2"
	b, sender := testBot(t, cfg, "")

	b.handleMessage(context.Background(), commandMessage(42, "/auth"))
	require.Equal(t, StateAwaitingPassword, b.conversation(42).State)

	b.handleMessage(context.Background(), &tgbotapi.Message{
		MessageID: 101,
		Chat:      &tgbotapi.Chat{ID: 42},
		Text:      "hunter2",
	})

	assert.True(t, b.auth.IsAuthenticated(42))
	assert.Equal(t, StateIdle, b.conversation(42).State)
	// the password message gets deleted from the chat
	require.NotEmpty(t, sender.requests)
	_, isDelete := sender.requests[0].(tgbotapi.DeleteMessageConfig)
	assert.True(t, isDelete, "expected the password message to be deleted")
}

func TestWrongPassword(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Password = "hunter2"
	b, sender := testBot(t, cfg, "")

	b.handleMessage(context.Background(), commandMessage(42, "/auth"))
	b.handleMessage(context.Background(), &tgbotapi.Message{
		MessageID: 101,
		Chat:      &tgbotapi.Chat{ID: 42},
		Text:      "wrong",
	})

	assert.False(t, b.auth.IsAuthenticated(42))
	texts := sender.messages(t)
	assert.Equal(t, "Wrong password. Use /auth to try again.", texts[len(texts)-1])
}

func TestAuthenticatePersistsToConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: de-de\nauthenticated_users: []\n"), 0o600))

	cfg := &config.Config{}
	cfg.Telegram.Password = "hunter2"
	auth := NewAuthenticator(cfg, path, nil)

	require.True(t, auth.Authenticate(42, "hunter2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Equal(t, "de-de", doc["language"], "unrelated keys must survive the rewrite")
	users, ok := doc["authenticated_users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 1)
	assert.EqualValues(t, 42, users[0])
}

func TestAllowListGate(t *testing.T) {
	cfg := &config.Config{AllowList: []int64{7}}
	cfg.Telegram.Password = "hunter2"
	cfg.Security.EnableAllowlist = true
	auth := NewAuthenticator(cfg, "", nil)

	assert.True(t, auth.Allowed(7))
	assert.False(t, auth.Allowed(42))

	// the gate off admits everyone
	cfg.Security.EnableAllowlist = false
	auth = NewAuthenticator(cfg, "", nil)
	assert.True(t, auth.Allowed(42))
}
