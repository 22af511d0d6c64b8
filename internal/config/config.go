package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values come from defaults, then an optional config.yml, then the environment.
type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	FoodData FoodDataConfig
	Storage  StorageConfig
	Events   EventsConfig
	Export   ExportConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AdminConfig struct {
	Password string
}

type FoodDataConfig struct {
	BaseURL         string
	APIKey          string
	Timeout         int
	SearchRateLimit float64 // requests per second across all callers
	SearchBurst     int
}

type StorageConfig struct {
	DBPath string // empty keeps all state in memory
}

type EventsConfig struct {
	RabbitMQURL string // empty disables publishing
	Queue       string
}

type ExportConfig struct {
	Dir       string
	S3Bucket  string
	S3Prefix  string
	AWSRegion string
	AccessKey string
	SecretKey string
}

var defaults = map[string]any{
	"PORT":              "8080",
	"HOST":              "0.0.0.0",
	"READ_TIMEOUT":      15,
	"WRITE_TIMEOUT":     15,
	"SHUTDOWN_TIMEOUT":  30,
	"LOG_LEVEL":         "info",
	"ADMIN_PASSWORD":    "nutriadmin",
	"FOODDATA_BASE_URL": "https://api.nal.usda.gov/fdc/v1",
	"FOODDATA_API_KEY":  "DEMO_KEY",
	"FOODDATA_TIMEOUT":  10,
	"SEARCH_RATE_LIMIT": 2.0,
	"SEARCH_BURST":      5,
	"DB_PATH":           "",
	"RABBITMQ_URL":      "",
	"RABBITMQ_QUEUE":    "nutribalance.submissions",
	"EXPORT_DIR":        ".",
	"EXPORT_S3_BUCKET":  "",
	"EXPORT_S3_PREFIX":  "",
	"AWS_REGION":        "",
	"AWS_ACCESS_KEY":    "",
	"AWS_SECRET_KEY":    "",
}

// Load reads configuration from config.yml in the working directory, if
// present, and the environment
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with config.yml looked up in dir
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("HOST"),
			ReadTimeout:     v.GetInt("READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SHUTDOWN_TIMEOUT"),
		},
		Admin: AdminConfig{
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		FoodData: FoodDataConfig{
			BaseURL:         v.GetString("FOODDATA_BASE_URL"),
			APIKey:          v.GetString("FOODDATA_API_KEY"),
			Timeout:         v.GetInt("FOODDATA_TIMEOUT"),
			SearchRateLimit: v.GetFloat64("SEARCH_RATE_LIMIT"),
			SearchBurst:     v.GetInt("SEARCH_BURST"),
		},
		Storage: StorageConfig{
			DBPath: v.GetString("DB_PATH"),
		},
		Events: EventsConfig{
			RabbitMQURL: v.GetString("RABBITMQ_URL"),
			Queue:       v.GetString("RABBITMQ_QUEUE"),
		},
		Export: ExportConfig{
			Dir:       v.GetString("EXPORT_DIR"),
			S3Bucket:  v.GetString("EXPORT_S3_BUCKET"),
			S3Prefix:  v.GetString("EXPORT_S3_PREFIX"),
			AWSRegion: v.GetString("AWS_REGION"),
			AccessKey: v.GetString("AWS_ACCESS_KEY"),
			SecretKey: v.GetString("AWS_SECRET_KEY"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	if c.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is required")
	}

	if c.FoodData.Timeout <= 0 {
		return errors.New("FOODDATA_TIMEOUT must be positive")
	}

	if c.FoodData.SearchRateLimit <= 0 || c.FoodData.SearchBurst <= 0 {
		return errors.New("SEARCH_RATE_LIMIT and SEARCH_BURST must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return errors.Newf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
