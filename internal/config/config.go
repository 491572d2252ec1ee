package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/docsage/docsage/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Gemini GeminiConfig `yaml:"gemini" mapstructure:"gemini"`
	Assist AssistConfig `yaml:"assist" mapstructure:"assist"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string           `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string           `yaml:"database_url" mapstructure:"database_url"`
	Pool        store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key                  string  `yaml:"key" mapstructure:"key"`
	Model                string  `yaml:"model" mapstructure:"model"`
	Temperature          float32 `yaml:"temperature" mapstructure:"temperature"`
	ChallengeTemperature float32 `yaml:"challenge_temperature" mapstructure:"challenge_temperature"`
	MaxOutputTokens      int32   `yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
	RequestsPerSecond    float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// AssistConfig configures generation behavior.
type AssistConfig struct {
	SummaryMaxWords  int `yaml:"summary_max_words" mapstructure:"summary_max_words"`
	ChallengeCount   int `yaml:"challenge_count" mapstructure:"challenge_count"`
	SnippetMaxLength int `yaml:"snippet_max_length" mapstructure:"snippet_max_length"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// WatchConfig configures the directory watcher.
type WatchConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DOCSAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "docsage.db")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.3)
	v.SetDefault("gemini.challenge_temperature", 0.5)
	v.SetDefault("gemini.max_output_tokens", 2048)
	v.SetDefault("gemini.requests_per_second", 2)
	v.SetDefault("assist.summary_max_words", 150)
	v.SetDefault("assist.challenge_count", 3)
	v.SetDefault("assist.snippet_max_length", 200)
	v.SetDefault("server.port", 8000)
	v.SetDefault("watch.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields required for the given run mode. Modes:
// "serve" (HTTP API), "generate" (one-shot CLI generation), "watch"
// (directory ingestion).
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		errs = append(errs, "store.driver must be sqlite or postgres")
	}
	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Gemini.Key == "" {
			errs = append(errs, "gemini.key is required")
		}
	case "generate":
		if c.Gemini.Key == "" {
			errs = append(errs, "gemini.key is required")
		}
	case "watch":
		if c.Watch.Dir == "" {
			errs = append(errs, "watch.dir is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
