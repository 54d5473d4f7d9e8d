package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/addarr/addarr/internal/health"
	"github.com/addarr/addarr/internal/i18n"
	"github.com/addarr/addarr/internal/media"
)

// Sender is the subset of the Telegram API the handlers use. The concrete
// *tgbotapi.BotAPI satisfies it; tests substitute a fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Deps holds everything a Bot needs beyond the Telegram client
type Deps struct {
	Media      *media.Service
	Health     *health.Monitor
	Auth       *Authenticator
	Translator *i18n.Translator
	Logger     *slog.Logger
}

// Bot routes Telegram updates to handlers and keeps per-chat conversation
// state
type Bot struct {
	api    Sender
	poller *tgbotapi.BotAPI
	media  *media.Service
	health *health.Monitor
	auth   *Authenticator
	tr     *i18n.Translator
	logger *slog.Logger

	mu            sync.Mutex
	conversations map[int64]*Conversation
}

// New creates a Bot over a live Telegram connection
func New(api *tgbotapi.BotAPI, deps Deps) *Bot {
	b := newBot(api, deps)
	b.poller = api
	return b
}

func newBot(api Sender, deps Deps) *Bot {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		api:           api,
		media:         deps.Media,
		health:        deps.Health,
		auth:          deps.Auth,
		tr:            deps.Translator,
		logger:        logger.With("component", "bot"),
		conversations: make(map[int64]*Conversation),
	}
}

// Run polls for updates until ctx is cancelled
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.poller.GetUpdatesChan(cfg)

	b.logger.Info("update loop started", "bot", b.poller.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.poller.StopReceivingUpdates()
			b.logger.Info("update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked", "panic", r)
		}
	}()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if !b.auth.Allowed(chatID) {
		b.logger.Warn("message from chat outside allow list", "chat_id", chatID)
		return
	}
	if b.auth.AdminRequired() && !b.auth.IsAdmin(chatID) {
		b.reply(chatID, b.tr.Get("auth.adminOnly", nil))
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// free text feeds the state machine
	conv := b.conversation(chatID)
	switch conv.State {
	case StateAwaitingPassword:
		b.handlePassword(msg, conv)
	case StateAwaitingSearch:
		b.handleSearchQuery(ctx, msg, conv)
	default:
		b.reply(chatID, b.tr.Get("help.hint", nil))
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	command := strings.ToLower(msg.Command())
	b.logger.Debug("command received", "chat_id", chatID, "command", command)

	switch command {
	case "start":
		b.handleStart(chatID)
		return
	case "help":
		b.handleHelp(chatID)
		return
	case "auth":
		b.handleAuth(chatID)
		return
	case "cancel", "stop":
		b.handleCancel(chatID)
		return
	}

	if !b.requireAuth(chatID) {
		return
	}

	switch command {
	case "movie":
		b.startSearch(ctx, chatID, media.KindMovie, msg.CommandArguments())
	case "series":
		b.startSearch(ctx, chatID, media.KindSeries, msg.CommandArguments())
	case "music":
		b.startSearch(ctx, chatID, media.KindMusic, msg.CommandArguments())
	case "delete":
		b.handleDelete(chatID)
	case "allmovies":
		b.handleLibrary(ctx, chatID, media.KindMovie, 0)
	case "allseries":
		b.handleLibrary(ctx, chatID, media.KindSeries, 0)
	case "allmusic":
		b.handleLibrary(ctx, chatID, media.KindMusic, 0)
	case "status":
		b.handleStatus(ctx, chatID)
	case "settings":
		b.handleSettings(chatID)
	case "transmission":
		b.handleTransmission(ctx, chatID)
	case "sabnzbd":
		b.handleSabnzbd(ctx, chatID)
	default:
		b.reply(chatID, b.tr.Get("help.unknown", nil))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data

	// every tap gets acknowledged so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Debug("callback ack failed", "error", err)
	}

	if !b.auth.Allowed(chatID) {
		return
	}

	switch {
	case strings.HasPrefix(data, "menu_"):
		b.handleMenuCallback(ctx, chatID, strings.TrimPrefix(data, "menu_"))
	case strings.HasPrefix(data, "nav_"):
		b.handleNavCallback(chatID, strings.TrimPrefix(data, "nav_"))
	case strings.HasPrefix(data, "select_"):
		b.handleSelectCallback(ctx, chatID, strings.TrimPrefix(data, "select_"))
	case strings.HasPrefix(data, "quality_"):
		b.handleQualityCallback(ctx, chatID, strings.TrimPrefix(data, "quality_"))
	case strings.HasPrefix(data, "season_"):
		b.handleSeasonCallback(ctx, chatID, strings.TrimPrefix(data, "season_"))
	case strings.HasPrefix(data, "delete_"):
		b.handleDeleteCallback(ctx, chatID, strings.TrimPrefix(data, "delete_"))
	case strings.HasPrefix(data, "lib_"):
		b.handleLibraryCallback(ctx, chatID, strings.TrimPrefix(data, "lib_"))
	case strings.HasPrefix(data, "settings_"):
		b.handleSettingsCallback(chatID, strings.TrimPrefix(data, "settings_"))
	case strings.HasPrefix(data, "lang_"):
		b.handleLanguageCallback(chatID, strings.TrimPrefix(data, "lang_"))
	case strings.HasPrefix(data, "sabnzbd_speed_"):
		b.handleSabnzbdSpeedCallback(ctx, chatID, strings.TrimPrefix(data, "sabnzbd_speed_"))
	case strings.HasPrefix(data, "transmission_"):
		b.handleTransmissionCallback(ctx, chatID, strings.TrimPrefix(data, "transmission_"))
	case strings.HasPrefix(data, "system_"):
		b.handleSystemCallback(ctx, chatID, strings.TrimPrefix(data, "system_"))
	default:
		b.logger.Debug("unhandled callback", "data", data)
	}
}

// requireAuth gates a command behind authentication. It sends exactly one
// localized refusal when the chat is not authenticated.
func (b *Bot) requireAuth(chatID int64) bool {
	if b.auth.IsAuthenticated(chatID) {
		return true
	}
	b.reply(chatID, b.tr.Get("auth.required", nil))
	return false
}

// conversation returns the chat's conversation, creating an idle one if
// none exists
func (b *Bot) conversation(chatID int64) *Conversation {
	b.mu.Lock()
	defer b.mu.Unlock()
	conv, ok := b.conversations[chatID]
	if !ok {
		conv = &Conversation{State: StateIdle}
		b.conversations[chatID] = conv
	}
	return conv
}

// resetConversation puts the chat back to idle with fresh state
func (b *Bot) resetConversation(chatID int64) *Conversation {
	b.mu.Lock()
	defer b.mu.Unlock()
	conv := &Conversation{State: StateIdle}
	b.conversations[chatID] = conv
	return conv
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("sending message failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("sending message failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("sending message failed", "chat_id", chatID, "error", err)
	}
}

// replyError renders a residual error as a generic localized message; the
// detail goes to the log only
func (b *Bot) replyError(chatID int64, err error) {
	b.logger.Error("handler error", "chat_id", chatID, "error", err)
	b.reply(chatID, b.tr.Get("error.generic", nil))
}
