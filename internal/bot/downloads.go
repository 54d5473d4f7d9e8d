package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleSabnzbd(ctx context.Context, chatID int64) {
	client := b.media.Sabnzbd()
	if client == nil {
		b.reply(chatID, b.tr.Get("search.disabled", map[string]string{"service": "SABnzbd"}))
		return
	}

	queue, err := client.Queue(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	state := b.tr.Get("sabnzbd.running", nil)
	if queue.Paused {
		state = b.tr.Get("sabnzbd.paused", nil)
	}
	text := b.tr.Get("sabnzbd.summary", map[string]string{
		"state": state,
		"speed": queue.Speed,
		"limit": queue.SpeedLimit,
		"slots": strconv.Itoa(len(queue.Slots)),
	})

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("25%", "sabnzbd_speed_25"),
			tgbotapi.NewInlineKeyboardButtonData("50%", "sabnzbd_speed_50"),
			tgbotapi.NewInlineKeyboardButtonData("100%", "sabnzbd_speed_100"),
		),
	)
	b.replyWithKeyboard(chatID, text, keyboard)
}

func (b *Bot) handleSabnzbdSpeedCallback(ctx context.Context, chatID int64, action string) {
	if !b.requireAuth(chatID) {
		return
	}
	client := b.media.Sabnzbd()
	if client == nil {
		return
	}

	percentage, err := strconv.Atoi(action)
	if err != nil {
		return
	}
	if err := client.SetSpeedLimit(ctx, percentage); err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, b.tr.Get("sabnzbd.speedSet", map[string]string{"percent": fmt.Sprintf("%d%%", percentage)}))
}

func (b *Bot) handleTransmission(ctx context.Context, chatID int64) {
	client := b.media.Transmission()
	if client == nil {
		b.reply(chatID, b.tr.Get("search.disabled", map[string]string{"service": "Transmission"}))
		return
	}

	enabled, err := client.AltSpeedEnabled(ctx)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	var text string
	var button tgbotapi.InlineKeyboardButton
	if enabled {
		text = b.tr.Get("transmission.turtleOn", nil)
		button = tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("transmission.disableTurtle", nil), "transmission_normal")
	} else {
		text = b.tr.Get("transmission.turtleOff", nil)
		button = tgbotapi.NewInlineKeyboardButtonData(b.tr.Get("transmission.enableTurtle", nil), "transmission_turtle")
	}
	b.replyWithKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(button)))
}

func (b *Bot) handleTransmissionCallback(ctx context.Context, chatID int64, action string) {
	if !b.requireAuth(chatID) {
		return
	}
	client := b.media.Transmission()
	if client == nil {
		return
	}

	var enable bool
	switch action {
	case "turtle":
		enable = true
	case "normal":
		enable = false
	default:
		return
	}

	if err := client.SetAltSpeed(ctx, enable); err != nil {
		b.replyError(chatID, err)
		return
	}
	if enable {
		b.reply(chatID, b.tr.Get("transmission.turtleOn", nil))
	} else {
		b.reply(chatID, b.tr.Get("transmission.turtleOff", nil))
	}
}
