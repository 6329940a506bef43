package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Telegram TelegramConfig `toml:"telegram"`
	Game     GameConfig     `toml:"game"`
}

type ServerConfig struct {
	Addr        string `toml:"addr"`
	FrontendURL string `toml:"frontend_url"`
}

// DatabaseConfig selects the round ledger. An empty driver disables it.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type TelegramConfig struct {
	Token string `toml:"token"`
}

type GameConfig struct {
	// Seed makes shuffles reproducible when non-zero
	Seed int64 `toml:"seed"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			FrontendURL: "http://localhost:5173",
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    filepath.Join(GetXDGDataHome(), "blackjack", "blackjack.db"),
		},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "blackjack", "config.toml")
}

// Load builds the configuration from defaults, the TOML file at path (or
// the default config file when path is empty), a .env file in the working
// directory and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = GetConfigFilePath()
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
		}
	}

	// A missing .env file is fine
	_ = godotenv.Load()

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"BLACKJACK_ADDR", &cfg.Server.Addr},
		{"BLACKJACK_FRONTEND_URL", &cfg.Server.FrontendURL},
		{"BLACKJACK_DB_DRIVER", &cfg.Database.Driver},
		{"BLACKJACK_DB_DSN", &cfg.Database.DSN},
		{"TELEGRAM_BOT_TOKEN", &cfg.Telegram.Token},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok {
			*o.target = v
		}
	}
}
