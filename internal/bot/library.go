package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/addarr/addarr/internal/media"
)

// libraryPageSize keeps listings inside Telegram's 4096-char message cap
const libraryPageSize = 25

func (b *Bot) handleLibrary(ctx context.Context, chatID int64, kind media.Kind, page int) {
	items, err := b.media.Library(ctx, kind)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(items) == 0 {
		b.reply(chatID, b.tr.Get("library.empty", nil))
		return
	}

	totalPages := (len(items) + libraryPageSize - 1) / libraryPageSize
	if page < 0 || page >= totalPages {
		page = 0
	}
	start := page * libraryPageSize
	end := start + libraryPageSize
	if end > len(items) {
		end = len(items)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d)\n\n", b.tr.Get("library.title."+kind.String(), nil), len(items))
	for _, item := range items[start:end] {
		marker := "📥"
		if item.OnDisk {
			marker = "✅"
		}
		if item.Year > 0 {
			fmt.Fprintf(&sb, "%s %s (%d)\n", marker, item.Title, item.Year)
		} else {
			fmt.Fprintf(&sb, "%s %s\n", marker, item.Title)
		}
	}
	if totalPages > 1 {
		fmt.Fprintf(&sb, "\n%d/%d", page+1, totalPages)
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	if totalPages > 1 {
		var nav []tgbotapi.InlineKeyboardButton
		if page > 0 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("lib_%s_%d", kind.String(), page-1)))
		}
		if page < totalPages-1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("lib_%s_%d", kind.String(), page+1)))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(nav)
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("sending library listing failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleLibraryCallback(ctx context.Context, chatID int64, action string) {
	if !b.requireAuth(chatID) {
		return
	}
	parts := strings.SplitN(action, "_", 2)
	if len(parts) != 2 {
		return
	}
	kind, ok := media.ParseKind(parts[0])
	if !ok {
		return
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil {
		return
	}
	b.handleLibrary(ctx, chatID, kind, page)
}
