package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/calvinwijaya/blackjack/internal/bot"
	"github.com/spf13/cobra"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the game as a Telegram bot",
	Long: `Bot serves one table per Telegram chat. The token is read from
TELEGRAM_BOT_TOKEN, a .env file or the [telegram] section of the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Telegram.Token == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		database := openDatabase(cfg)
		if database != nil {
			defer database.Close()
		}

		b, err := bot.New(cfg.Telegram.Token, database, deckOptions(cfg)...)
		if err != nil {
			return fmt.Errorf("failed to create bot: %w", err)
		}

		return b.Run(ctx)
	},
}
