package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/addarr/addarr/internal/media"
)

// deletePageSize caps a delete list keyboard; Telegram rejects oversized
// reply markups
const deletePageSize = 10

func (b *Bot) handleDelete(chatID int64) {
	conv := b.resetConversation(chatID)
	conv.State = StateDeleteSelecting

	var row []tgbotapi.InlineKeyboardButton
	if b.media.Enabled(media.KindMovie) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.movie", nil), "delete_kind_movie"))
	}
	if b.media.Enabled(media.KindSeries) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.series", nil), "delete_kind_series"))
	}
	if b.media.Enabled(media.KindMusic) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("menu.music", nil), "delete_kind_music"))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("flow.cancel", nil), "delete_cancel"),
		),
	)
	b.replyWithKeyboard(chatID, b.tr.Get("delete.prompt", nil), keyboard)
}

func (b *Bot) handleDeleteCallback(ctx context.Context, chatID int64, action string) {
	if !b.requireAuth(chatID) {
		return
	}
	conv := b.conversation(chatID)

	switch {
	case action == "cancel":
		b.resetConversation(chatID)
		b.reply(chatID, b.tr.Get("flow.cancelled", nil))

	case strings.HasPrefix(action, "kind_"):
		kind, ok := media.ParseKind(strings.TrimPrefix(action, "kind_"))
		if !ok {
			return
		}
		conv.Kind = kind
		items, err := b.media.Library(ctx, kind)
		if err != nil {
			b.replyError(chatID, err)
			b.resetConversation(chatID)
			return
		}
		if len(items) == 0 {
			b.reply(chatID, b.tr.Get("library.empty", nil))
			b.resetConversation(chatID)
			return
		}
		conv.Items = items
		conv.Page = 0
		b.showDeletePage(chatID, conv)

	case strings.HasPrefix(action, "page_"):
		page, err := strconv.Atoi(strings.TrimPrefix(action, "page_"))
		if err != nil || conv.State != StateDeleteSelecting {
			return
		}
		conv.Page = page
		b.showDeletePage(chatID, conv)

	case strings.HasPrefix(action, "item_"):
		id, err := strconv.Atoi(strings.TrimPrefix(action, "item_"))
		if err != nil || conv.State != StateDeleteSelecting {
			return
		}
		conv.DeleteID = id
		conv.State = StateDeleteConfirm
		title := b.itemTitle(conv, id)
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("delete.confirmButton", nil), fmt.Sprintf("delete_go_%d", id)),
				tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("flow.cancel", nil), "delete_cancel"),
			),
		)
		b.replyWithKeyboard(chatID, b.tr.Get("delete.confirm", map[string]string{"title": title}), keyboard)

	case strings.HasPrefix(action, "go_"):
		id, err := strconv.Atoi(strings.TrimPrefix(action, "go_"))
		if err != nil || conv.State != StateDeleteConfirm || id != conv.DeleteID {
			return
		}
		title := b.itemTitle(conv, id)
		if err := b.media.Delete(ctx, conv.Kind, id); err != nil {
			b.replyError(chatID, err)
		} else {
			b.reply(chatID, b.tr.Get("delete.done", map[string]string{"title": title}))
		}
		b.resetConversation(chatID)
	}
}

func (b *Bot) showDeletePage(chatID int64, conv *Conversation) {
	start := conv.Page * deletePageSize
	if start >= len(conv.Items) {
		start = 0
		conv.Page = 0
	}
	end := start + deletePageSize
	if end > len(conv.Items) {
		end = len(conv.Items)
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, deletePageSize+2)
	for _, item := range conv.Items[start:end] {
		label := item.Title
		if item.Year > 0 {
			label = fmt.Sprintf("%s (%d)", item.Title, item.Year)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("delete_item_%d", item.ID)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if conv.Page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("delete_page_%d", conv.Page-1)))
	}
	if end < len(conv.Items) {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("delete_page_%d", conv.Page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("flow.cancel", nil), "delete_cancel"),
	))

	b.replyWithKeyboard(chatID, b.tr.Get("delete.pick", nil), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) itemTitle(conv *Conversation, id int) string {
	for _, item := range conv.Items {
		if item.ID == id {
			return item.Title
		}
	}
	return "?"
}
