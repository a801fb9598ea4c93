package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/temperature-heatmap/internal/dataset/sources"
	"github.com/i474232898/temperature-heatmap/internal/logger"
)

type AppConfig struct {
	// DatasetURL is fetched unless DatasetFile is set.
	DatasetURL  string `mapstructure:"dataset_url" validate:"omitempty,url"`
	DatasetFile string `mapstructure:"dataset_file"`

	// FetchInterval controls how often the dataset is refreshed.
	FetchInterval time.Duration `mapstructure:"fetch_interval"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`

	// In-memory store retention.
	StoreMaxHistory int           `mapstructure:"store_max_history" validate:"gte=0"` // 0 = unlimited
	StoreMaxAge     time.Duration `mapstructure:"store_max_age"`                      // 0 = unlimited

	Port string `mapstructure:"port" validate:"required,numeric"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json text"`
}

var validate = validator.New()

// Load reads configuration from .env, an optional config file and the
// environment, in increasing order of precedence. An empty path falls back
// to CONFIG_FILE.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found or error loading it: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset_url", sources.DefaultURL)
	v.SetDefault("dataset_file", "")
	v.SetDefault("fetch_interval", "6h")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("store_max_history", 10)
	v.SetDefault("store_max_age", "168h")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Validate checks that all configuration values are valid.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.DatasetURL == "" && c.DatasetFile == "" {
		return fmt.Errorf("one of dataset_url or dataset_file is required")
	}
	if c.FetchInterval < time.Minute {
		return fmt.Errorf("fetch_interval must be at least 1 minute")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.StoreMaxAge < 0 {
		return fmt.Errorf("store_max_age must not be negative")
	}
	return nil
}
