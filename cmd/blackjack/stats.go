package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [session]",
	Short: "Show results from the round ledger",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		database := openDatabase(cfg)
		if database == nil {
			return fmt.Errorf("round ledger is not available")
		}
		defer database.Close()

		sessionID := ""
		if len(args) == 1 {
			sessionID = args[0]
		}

		stats, err := database.GetStats(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("error reading stats: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintf(out, "Rounds played: %d\n", stats.Rounds)
		color.New(color.FgGreen).Fprintf(out, "Player wins:   %d (%d blackjacks)\n", stats.PlayerWins, stats.Blackjacks)
		color.New(color.FgRed).Fprintf(out, "Dealer wins:   %d\n", stats.DealerWins)
		color.New(color.FgYellow).Fprintf(out, "Pushes:        %d\n", stats.Pushes)
		fmt.Fprintf(out, "Win rate:      %.1f%%\n", stats.WinRate())
		if !stats.LastPlayed.IsZero() {
			fmt.Fprintf(out, "Last played:   %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}
