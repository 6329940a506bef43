package main

import (
	"io"
	"log"
	"os"

	"github.com/calvinwijaya/blackjack/internal/game"
	"github.com/calvinwijaya/blackjack/internal/terminal"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play deals rounds in the terminal. Type h to hit, s to stand, n to
shuffle and deal a new round, q to quit. Finished rounds are recorded in the
round ledger when one is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
		// Keep ledger notices off the table
		log.SetOutput(io.Discard)

		console := terminal.NewConsole(os.Stdin, os.Stdout)
		display := game.Displays{console}

		if database := openDatabase(cfg); database != nil {
			defer database.Close()
			display = append(display, database.Recorder(uuid.New().String()))
		}

		e := game.NewEngine(game.NewDeck(deckOptions(cfg)...), display)
		return console.Play(e)
	},
}
