package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`         // current application environment (local, dev, prod etc)
	TelegramAPIToken string  `mapstructure:"-"`           // Telegram API token loaded from environment
	AdminChatID      int64   `mapstructure:"-"`           // chat id allowed to run admin commands
	CorpusPath       string  `mapstructure:"corpus_path"` // path to the plain-text question corpus
	MigrationsPath   string  `mapstructure:"migrations_path"`
	Webhook          Webhook `mapstructure:"webhook"`  // webhook mode configuration section
	DB               DB      `mapstructure:"database"` // database configuration section
}

// Webhook contains webhook-mode parameters. When disabled the bot runs in
// long-polling mode.
type Webhook struct {
	Enabled bool   `mapstructure:"-"` // WEBHOOK_MODE environment variable
	BaseURL string `mapstructure:"-"` // public base URL, loaded from environment
	Port    int    `mapstructure:"port"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("corpus_path", "assets/tests.txt")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("webhook.port", 8443)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("admin_chat_id", "ADMIN_CHAT_ID")
	_ = v.BindEnv("webhook_mode", "WEBHOOK_MODE")
	_ = v.BindEnv("webhook_url", "WEBHOOK_URL")
	_ = v.BindEnv("webhook.port", "PORT")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// Admin id is optional; without it the /addsubscriber command is
	// rejected for every caller.
	cfg.AdminChatID = v.GetInt64("admin_chat_id")

	cfg.Webhook.Enabled = v.GetBool("webhook_mode")
	cfg.Webhook.BaseURL = v.GetString("webhook_url")
	if cfg.Webhook.Enabled && cfg.Webhook.BaseURL == "" {
		return nil, fmt.Errorf("%w: WEBHOOK_URL is required in webhook mode", ErrMissingEnvironmentVariables)
	}

	return &cfg, nil
}
