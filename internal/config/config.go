package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the scenario store. An empty driver disables it.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver" validate:"omitempty,oneof=sqlite postgres"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns" validate:"gte=0"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns" validate:"gte=0"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst" validate:"gte=0"`
	CORSOrigins    []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// EngineConfig selects how critical values are obtained and how comparisons
// are parallelized.
type EngineConfig struct {
	// ExactQuantiles replaces the critical-value tables with the inverse
	// normal CDF.
	ExactQuantiles     bool `yaml:"exact_quantiles" mapstructure:"exact_quantiles"`
	CompareConcurrency int  `yaml:"compare_concurrency" mapstructure:"compare_concurrency" validate:"gte=0"`
}

// ExportConfig configures comparison export.
type ExportConfig struct {
	DefaultFormat string `yaml:"default_format" mapstructure:"default_format" validate:"oneof=csv json xlsx"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SAMPLESIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "")
	v.SetDefault("store.database_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("engine.exact_quantiles", false)
	v.SetDefault("engine.compare_concurrency", 4)
	v.SetDefault("export.default_format", "csv")

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
	if err := cfg.Validate(ModeCalc); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validation modes, one per group of commands with distinct requirements.
const (
	ModeCalc  = "calc"
	ModeServe = "serve"
	ModeStore = "store"
)

// Validate checks field constraints and the requirements of mode.
func (c *Config) Validate(mode string) error {
	if err := validator.New().Struct(c); err != nil {
		return eris.Wrap(err, "config: validate")
	}

	var errs []string
	switch mode {
	case ModeCalc:
	case ModeServe:
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case ModeStore:
		if c.Store.Driver == "" {
			errs = append(errs, "store.driver is required (sqlite or postgres)")
		}
		if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for postgres")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}
	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
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
