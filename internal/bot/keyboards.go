package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackHit     = "hit"
	CallbackStand   = "stand"
	CallbackShuffle = "shuffle"
	CallbackStats   = "stats"
)

func GameKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👊 Hit", CallbackHit),
			tgbotapi.NewInlineKeyboardButtonData("✋ Stand", CallbackStand),
		),
	)
}

func EndGameKeyboard(withStats bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔄 Shuffle", CallbackShuffle),
	}
	if withStats {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("📊 Stats", CallbackStats))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
