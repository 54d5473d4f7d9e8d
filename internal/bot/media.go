package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/addarr/addarr/internal/arrapi"
	"github.com/addarr/addarr/internal/media"
)

// captionLimit is Telegram's hard cap on photo captions
const captionLimit = 1024

func (b *Bot) startSearch(ctx context.Context, chatID int64, kind media.Kind, query string) {
	if !b.media.Enabled(kind) {
		b.reply(chatID, b.tr.Get("search.disabled", map[string]string{"service": kind.ServiceName()}))
		return
	}

	conv := b.resetConversation(chatID)
	conv.Kind = kind

	query = strings.TrimSpace(query)
	if query == "" {
		conv.State = StateAwaitingSearch
		b.reply(chatID, b.tr.Get("search.prompt."+kind.String(), nil))
		return
	}
	b.runSearch(ctx, chatID, conv, query)
}

func (b *Bot) handleSearchQuery(ctx context.Context, msg *tgbotapi.Message, conv *Conversation) {
	b.runSearch(ctx, msg.Chat.ID, conv, strings.TrimSpace(msg.Text))
}

func (b *Bot) runSearch(ctx context.Context, chatID int64, conv *Conversation, query string) {
	results, err := b.media.Search(ctx, conv.Kind, query)
	if err != nil {
		b.replyError(chatID, err)
		b.resetConversation(chatID)
		return
	}
	if len(results) == 0 {
		conv.State = StateAwaitingSearch
		b.reply(chatID, b.tr.Get("search.noResults", map[string]string{"query": query}))
		return
	}

	conv.State = StateSelectingResult
	conv.Results = results
	conv.Index = 0
	b.showResult(chatID, conv)
}

// showResult renders the current carousel entry. Navigation replaces the
// whole message since photo messages cannot become text messages.
func (b *Bot) showResult(chatID int64, conv *Conversation) {
	result := conv.current()
	if result == nil {
		return
	}

	if conv.MessageID != 0 {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, conv.MessageID)); err != nil {
			b.logger.Debug("deleting carousel message failed", "error", err)
		}
		conv.MessageID = 0
	}

	caption := resultCaption(result, conv.Index+1, len(conv.Results))
	keyboard := b.carouselKeyboard(conv)

	var sent tgbotapi.Message
	var err error
	if result.Poster != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(result.Poster))
		photo.Caption = caption
		photo.ReplyMarkup = keyboard
		sent, err = b.api.Send(photo)
		if err != nil {
			// bad poster URLs are common in lookup payloads; fall back to text
			b.logger.Debug("sending photo failed, falling back to text", "error", err)
			msg := tgbotapi.NewMessage(chatID, caption)
			msg.ReplyMarkup = keyboard
			sent, err = b.api.Send(msg)
		}
	} else {
		msg := tgbotapi.NewMessage(chatID, caption)
		msg.ReplyMarkup = keyboard
		sent, err = b.api.Send(msg)
	}
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	conv.MessageID = sent.MessageID
}

func (b *Bot) carouselKeyboard(conv *Conversation) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if conv.Index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", "nav_prev"))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("search.select", nil), "select_this"))
	if conv.Index < len(conv.Results)-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", "nav_next"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		nav,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("flow.cancel", nil), "nav_cancel"),
		),
	)
}

func resultCaption(r *media.SearchResult, position, total int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  [%d/%d]\n", r.Title, position, total)
	if len(r.Genres) > 0 {
		sb.WriteString(strings.Join(r.Genres, ", "))
		sb.WriteString("\n")
	}
	if r.Ratings.IMDB > 0 {
		fmt.Fprintf(&sb, "IMDb %.1f  ", r.Ratings.IMDB)
	}
	if r.Ratings.TMDB > 0 {
		fmt.Fprintf(&sb, "TMDb %.1f", r.Ratings.TMDB)
	}
	if r.Ratings.IMDB > 0 || r.Ratings.TMDB > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(r.Overview)

	caption := sb.String()
	if len(caption) > captionLimit {
		// cut on a rune boundary so the caption stays valid UTF-8
		cut := captionLimit - len("…")
		for cut > 0 && !utf8.RuneStart(caption[cut]) {
			cut--
		}
		caption = caption[:cut] + "…"
	}
	return caption
}

func (b *Bot) handleNavCallback(chatID int64, action string) {
	conv := b.conversation(chatID)
	if conv.State != StateSelectingResult {
		return
	}
	switch action {
	case "prev":
		if conv.Index > 0 {
			conv.Index--
			b.showResult(chatID, conv)
		}
	case "next":
		if conv.Index < len(conv.Results)-1 {
			conv.Index++
			b.showResult(chatID, conv)
		}
	case "cancel":
		b.resetConversation(chatID)
		b.reply(chatID, b.tr.Get("flow.cancelled", nil))
	}
}

func (b *Bot) handleSelectCallback(ctx context.Context, chatID int64, _ string) {
	conv := b.conversation(chatID)
	if conv.State != StateSelectingResult {
		return
	}
	result := conv.current()
	if result == nil {
		return
	}

	switch outcome := b.media.StartAdd(ctx, conv.Kind, result.ID).(type) {
	case media.Failed:
		b.reply(chatID, outcome.Message)
		b.resetConversation(chatID)
	case media.Added:
		b.reply(chatID, outcome.Message)
		b.resetConversation(chatID)
	case media.NeedsProfileSelection:
		conv.State = StateSelectingQuality
		conv.Profiles = outcome.Profiles
		conv.RootFolder = outcome.RootFolder
		if conv.Kind == media.KindSeries {
			conv.Seasons = media.NewSeasonSelection(outcome.Seasons)
		}
		b.showQualityKeyboard(chatID, conv)
	}
}

func (b *Bot) showQualityKeyboard(chatID int64, conv *Conversation) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(conv.Profiles)+1)
	for _, p := range conv.Profiles {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name, fmt.Sprintf("quality_%d", p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("flow.cancel", nil), "quality_cancel"),
	))
	b.replyWithKeyboard(chatID, b.tr.Get("quality.prompt", nil), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) handleQualityCallback(ctx context.Context, chatID int64, action string) {
	conv := b.conversation(chatID)
	if conv.State != StateSelectingQuality {
		return
	}
	if action == "cancel" {
		b.resetConversation(chatID)
		b.reply(chatID, b.tr.Get("flow.cancelled", nil))
		return
	}

	profileID, err := strconv.Atoi(action)
	if err != nil {
		return
	}
	conv.ProfileID = profileID

	if conv.Kind == media.KindSeries {
		conv.State = StateSelectingSeasons
		b.showSeasonKeyboard(chatID, conv)
		return
	}
	b.completeAdd(ctx, chatID, conv, nil)
}

func (b *Bot) showSeasonKeyboard(chatID int64, conv *Conversation) {
	sel := conv.Seasons
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				checkmark(sel.MonitorAll())+b.tr.Get("season.monitorAll", nil), "season_monitorall"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("season.all", nil), "season_all"),
		),
	}

	row := make([]tgbotapi.InlineKeyboardButton, 0, 4)
	for _, season := range sel.Seasons() {
		label := checkmark(sel.IsSelected(season.SeasonNumber)) + seasonLabel(season.SeasonNumber)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			label, fmt.Sprintf("season_toggle_%d", season.SeasonNumber)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 4)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				checkmark(sel.Future() == media.FutureSeasons)+b.tr.Get("season.futureSeasons", nil),
				"season_future_seasons"),
			tgbotapi.NewInlineKeyboardButtonData(
				checkmark(sel.Future() == media.FutureEpisodes)+b.tr.Get("season.futureEpisodes", nil),
				"season_future_episodes"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("flow.confirm", nil), "season_confirm"),
			tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("flow.cancel", nil), "season_cancel"),
		),
	)
	b.replyWithKeyboard(chatID, b.tr.Get("season.prompt", nil), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func seasonLabel(n int) string {
	if n == 0 {
		return "Specials"
	}
	return fmt.Sprintf("S%d", n)
}

func checkmark(on bool) string {
	if on {
		return "✅ "
	}
	return ""
}

func (b *Bot) handleSeasonCallback(ctx context.Context, chatID int64, action string) {
	conv := b.conversation(chatID)
	if conv.State != StateSelectingSeasons || conv.Seasons == nil {
		return
	}

	switch {
	case action == "cancel":
		b.resetConversation(chatID)
		b.reply(chatID, b.tr.Get("flow.cancelled", nil))
		return
	case action == "confirm":
		b.completeAdd(ctx, chatID, conv, conv.Seasons.Payload())
		return
	case action == "monitorall":
		if conv.Seasons.ToggleMonitorAll() {
			// turning monitor-all on skips the rest of the selection
			b.completeAdd(ctx, chatID, conv, conv.Seasons.Payload())
			return
		}
	case action == "all":
		conv.Seasons.ToggleAll()
	case action == "future_seasons":
		conv.Seasons.ToggleFutureSeasons()
	case action == "future_episodes":
		conv.Seasons.ToggleFutureEpisodes()
	case strings.HasPrefix(action, "toggle_"):
		n, err := strconv.Atoi(strings.TrimPrefix(action, "toggle_"))
		if err != nil {
			return
		}
		conv.Seasons.ToggleSeason(n)
	default:
		return
	}
	b.showSeasonKeyboard(chatID, conv)
}

func (b *Bot) completeAdd(ctx context.Context, chatID int64, conv *Conversation, seasons []arrapi.Season) {
	result := conv.current()
	if result == nil {
		return
	}

	message, err := b.media.CompleteAdd(ctx, conv.Kind, result.ID, conv.ProfileID, conv.RootFolder, seasons)
	b.resetConversation(chatID)
	if err != nil {
		var exists *arrapi.AlreadyExistsError
		if errors.As(err, &exists) {
			b.reply(chatID, exists.Error())
			return
		}
		b.reply(chatID, "❌ "+err.Error())
		return
	}
	b.reply(chatID, "✅ "+message)
}
