package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken string `env:"DISCORD_BOT_TOKEN,required,notEmpty"`
	// GuildID scopes slash command registration to one guild, which applies instantly.
	// Commands are registered globally when empty.
	GuildID string `env:"DISCORD_GUILD_ID"`
}

type SlackConfig struct {
	AlertWebhookURL string `env:"SLACK_ALERT_WEBHOOK_URL"`
}

// IsConfigured returns true if error alerts should be delivered
func (c SlackConfig) IsConfigured() bool {
	return c.AlertWebhookURL != ""
}

type AppConfig struct {
	// Core configuration
	DatabaseURL    string        `env:"DB_URL,required,notEmpty"`
	DatabaseSchema string        `env:"DB_SCHEMA"       envDefault:"public"`
	Port           string        `env:"PORT"            envDefault:"8080"`
	Environment    string        `env:"ENVIRONMENT"     envDefault:"dev"`
	LogLevel       string        `env:"LOG_LEVEL"       envDefault:"info"`
	ServerLogsURL  string        `env:"SERVER_LOGS_URL"`
	EventTimeout   time.Duration `env:"EVENT_TIMEOUT"   envDefault:"15s"`
	EventWorkers   int           `env:"EVENT_WORKERS"   envDefault:"16"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE"    envDefault:"true"`

	// Integration configurations (grouped)
	DiscordConfig DiscordConfig
	SlackConfig   SlackConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	return parseConfig()
}

func parseConfig() (*AppConfig, error) {
	var config AppConfig
	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	if config.EventTimeout <= 0 {
		return nil, fmt.Errorf("EVENT_TIMEOUT must be positive, got %s", config.EventTimeout)
	}

	if config.EventWorkers < 1 {
		return nil, fmt.Errorf("EVENT_WORKERS must be at least 1, got %d", config.EventWorkers)
	}

	return &config, nil
}
