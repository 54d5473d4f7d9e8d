package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/addarr/addarr/internal/media"
)

func (b *Bot) handleStart(chatID int64) {
	b.resetConversation(chatID)

	if !b.auth.IsAuthenticated(chatID) {
		b.reply(chatID, b.tr.Get("auth.welcome", nil))
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.movie", nil), "menu_movie"),
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.series", nil), "menu_series"),
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.music", nil), "menu_music"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.delete", nil), "menu_delete"),
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.status", nil), "menu_status"),
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.settings", nil), "menu_settings"),
		),
	)
	b.replyWithKeyboard(chatID, b.tr.Get("menu.title", nil), keyboard)
}

func (b *Bot) handleMenuCallback(ctx context.Context, chatID int64, action string) {
	if !b.requireAuth(chatID) {
		return
	}
	switch action {
	case "movie":
		b.startSearch(ctx, chatID, media.KindMovie, "")
	case "series":
		b.startSearch(ctx, chatID, media.KindSeries, "")
	case "music":
		b.startSearch(ctx, chatID, media.KindMusic, "")
	case "delete":
		b.handleDelete(chatID)
	case "status":
		b.handleStatus(ctx, chatID)
	case "settings":
		b.handleSettings(chatID)
	}
}

func (b *Bot) handleHelp(chatID int64) {
	b.replyMarkdown(chatID, b.tr.Get("help.text", nil))
}

func (b *Bot) handleCancel(chatID int64) {
	b.resetConversation(chatID)
	b.reply(chatID, b.tr.Get("flow.cancelled", nil))
}

func (b *Bot) handleAuth(chatID int64) {
	if b.auth.IsAuthenticated(chatID) {
		b.reply(chatID, b.tr.Get("auth.already", nil))
		return
	}
	conv := b.resetConversation(chatID)
	conv.State = StateAwaitingPassword
	b.reply(chatID, b.tr.Get("auth.prompt", nil))
}

func (b *Bot) handlePassword(msg *tgbotapi.Message, conv *Conversation) {
	chatID := msg.Chat.ID
	conv.State = StateIdle

	// remove the password from the chat history
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
		b.logger.Debug("deleting password message failed", "error", err)
	}

	if b.auth.Authenticate(chatID, msg.Text) {
		b.reply(chatID, b.tr.Get("auth.success", nil))
		b.handleStart(chatID)
		return
	}
	b.reply(chatID, b.tr.Get("auth.wrong", nil))
}
