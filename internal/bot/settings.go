package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/addarr/addarr/internal/media"
)

func (b *Bot) handleSettings(chatID int64) {
	var sb strings.Builder
	sb.WriteString(b.tr.Get("settings.title", nil))
	sb.WriteString("\n\n")
	for _, kind := range []media.Kind{media.KindMovie, media.KindSeries, media.KindMusic} {
		marker := "❌"
		if b.media.Enabled(kind) {
			marker = "✅"
		}
		sb.WriteString(marker + " " + kind.ServiceName() + "\n")
	}
	if b.media.Transmission() != nil {
		sb.WriteString("✅ Transmission\n")
	}
	if b.media.Sabnzbd() != nil {
		sb.WriteString("✅ SABnzbd\n")
	}
	sb.WriteString("\n" + b.tr.Get("settings.language", map[string]string{"language": b.tr.Language()}))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("settings.changeLanguage", nil), "settings_language"),
		),
	)
	b.replyWithKeyboard(chatID, sb.String(), keyboard)
}

func (b *Bot) handleSettingsCallback(chatID int64, action string) {
	if !b.requireAuth(chatID) {
		return
	}
	if action != "language" {
		return
	}

	langs := b.tr.Languages()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(langs))
	for _, lang := range langs {
		label := lang
		if lang == b.tr.Language() {
			label = "✅ " + lang
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "lang_"+lang),
		))
	}
	b.replyWithKeyboard(chatID, b.tr.Get("settings.pickLanguage", nil), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) handleLanguageCallback(chatID int64, lang string) {
	if !b.requireAuth(chatID) {
		return
	}
	if err := b.tr.SetLanguage(lang); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, b.tr.Get("settings.languageChanged", map[string]string{"language": lang}))
}
