package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/calvinwijaya/blackjack/internal/config"
	"github.com/calvinwijaya/blackjack/internal/db"
	"github.com/calvinwijaya/blackjack/internal/game"
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blackjack",
	Short: "Single-player blackjack against the dealer",
	Long: `Blackjack deals single-player rounds against a dealer who draws below 17
while behind the player. Play in the terminal, serve the game over HTTP and
WebSocket, or run it as a Telegram bot.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/blackjack/config.toml)")
	rootCmd.PersistentFlags().String("db-driver", "", "round ledger driver: sqlite3, postgres, or none")
	rootCmd.PersistentFlags().String("db-dsn", "", "round ledger data source")
	rootCmd.PersistentFlags().Int64("seed", 0, "shuffle seed for reproducible deals (0 picks a random seed)")

	rootCmd.AddCommand(playCmd, serveCmd, botCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies the persistent flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("db-driver") {
		cfg.Database.Driver, _ = flags.GetString("db-driver")
	}
	if flags.Changed("db-dsn") {
		cfg.Database.DSN, _ = flags.GetString("db-dsn")
	}
	if flags.Changed("seed") {
		cfg.Game.Seed, _ = flags.GetInt64("seed")
	}
	if cfg.Database.Driver == "none" {
		cfg.Database.Driver = ""
	}

	return cfg, nil
}

func deckOptions(cfg *config.Config) []game.DeckOption {
	if cfg.Game.Seed == 0 {
		return nil
	}
	return []game.DeckOption{game.WithSeed(cfg.Game.Seed)}
}

// openDatabase opens the round ledger. Games run without it when it is
// disabled or unavailable.
func openDatabase(cfg *config.Config) *db.Database {
	if cfg.Database.Driver == "" {
		log.Println("Round ledger disabled")
		return nil
	}

	if cfg.Database.Driver == db.DriverSQLite {
		// Create data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			log.Printf("Warning: Failed to create data directory: %v", err)
		}
	}

	database, err := db.NewDatabase(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Printf("Warning: Failed to initialize database: %v", err)
		log.Println("Continuing without round ledger")
		return nil
	}

	log.Println("Database initialized successfully")
	return database
}
