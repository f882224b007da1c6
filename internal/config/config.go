package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Scoreboard backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`        // current application environment (local, dev, production)
	TelegramAPIToken string     `mapstructure:"-"`          // Telegram API token loaded from environment
	API              API        `mapstructure:"api"`        // trivia API client section
	Quiz             Quiz       `mapstructure:"quiz"`       // quiz round settings
	Scoreboard       Scoreboard `mapstructure:"scoreboard"` // score persistence section
	DB               DB         `mapstructure:"database"`   // database configuration section
}

// API contains the trivia API endpoints and transport settings.
type API struct {
	QuestionsURL  string        `mapstructure:"questions_url"`
	CategoriesURL string        `mapstructure:"categories_url"`
	TokenURL      string        `mapstructure:"token_url"`
	Timeout       time.Duration `mapstructure:"timeout"`        // per-request timeout
	RetryMax      int           `mapstructure:"retry_max"`      // transport retries on 429/5xx
	RetryWaitMin  time.Duration `mapstructure:"retry_wait_min"` // first backoff delay
}

// Quiz contains the per-round settings.
type Quiz struct {
	Amount          int `mapstructure:"amount"`            // questions per round, 1-50
	MaxTokenRetries int `mapstructure:"max_token_retries"` // token reset attempts per fetch
}

// Scoreboard selects and configures the score persistence backend.
type Scoreboard struct {
	Backend string `mapstructure:"backend"` // "file" or "postgres"
	File    string `mapstructure:"file"`    // path to the JSON scores file
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment
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
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("api.questions_url", "https://opentdb.com/api.php")
	v.SetDefault("api.categories_url", "https://opentdb.com/api_category.php")
	v.SetDefault("api.token_url", "https://opentdb.com/api_token.php")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.retry_max", 3)
	v.SetDefault("api.retry_wait_min", "5s")
	v.SetDefault("quiz.amount", 10)
	v.SetDefault("quiz.max_token_retries", 3)
	v.SetDefault("scoreboard.backend", BackendFile)
	v.SetDefault("scoreboard.file", "scores/scores.json")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

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
	if cfg.Scoreboard.Backend == BackendPostgres && cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if cfg.Quiz.Amount < 1 || cfg.Quiz.Amount > 50 {
		return nil, fmt.Errorf("quiz.amount must be between 1 and 50, got %d", cfg.Quiz.Amount)
	}

	return &cfg, nil
}
