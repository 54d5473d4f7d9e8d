package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleStatus(ctx context.Context, chatID int64) {
	b.sendStatus(ctx, chatID)
}

func (b *Bot) sendStatus(ctx context.Context, chatID int64) {
	results := b.health.RunChecks(ctx)

	var sb strings.Builder
	sb.WriteString(b.tr.Get("status.title", nil))
	sb.WriteString("\n\n")
	for _, r := range results {
		marker := "❌"
		if r.Healthy {
			marker = "✅"
		}
		sb.WriteString(marker)
		sb.WriteString(" ")
		sb.WriteString(r.Name)
		if r.Status != "" {
			sb.WriteString(": ")
			sb.WriteString(r.Status)
		}
		sb.WriteString("\n")
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("status.refresh", nil), "system_refresh"),
		),
	)
	b.replyWithKeyboard(chatID, sb.String(), keyboard)
}

func (b *Bot) handleSystemCallback(ctx context.Context, chatID int64, action string) {
	if !b.requireAuth(chatID) {
		return
	}
	if action == "refresh" {
		b.sendStatus(ctx, chatID)
	}
}
