// Package bot serves blackjack tables to Telegram chats.
package bot

import (
	"context"
	"log"

	"github.com/calvinwijaya/blackjack/internal/db"
	"github.com/calvinwijaya/blackjack/internal/game"
	"github.com/calvinwijaya/blackjack/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
}

func New(token string, database *db.Database, deckOpts ...game.DeckOption) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		handler: NewHandler(api, store.NewMemoryStore(), database, deckOpts...),
	}, nil
}

// Run polls for updates until ctx is done
func (b *Bot) Run(ctx context.Context) error {
	log.Printf("Bot started: @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Println("Bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}

			if update.CallbackQuery != nil {
				go b.handler.HandleCallback(update.CallbackQuery)
				continue
			}

			if update.Message != nil {
				go b.handler.HandleMessage(update.Message)
			}
		}
	}
}
