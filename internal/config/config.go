package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/driveline-group/showroom-cli/internal/match"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Finance   FinanceConfig   `yaml:"finance" mapstructure:"finance"`
	Match     match.Config    `yaml:"match" mapstructure:"match"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Advisor   AdvisorConfig   `yaml:"advisor" mapstructure:"advisor"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// FinanceConfig holds the rate assumptions used when the caller does not
// supply them.
type FinanceConfig struct {
	DefaultInterestRate float64 `yaml:"default_interest_rate" mapstructure:"default_interest_rate"`
	DefaultMoneyFactor  float64 `yaml:"default_money_factor" mapstructure:"default_money_factor"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// AdvisorConfig configures the Claude-backed extras.
type AdvisorConfig struct {
	Explain     bool `yaml:"explain" mapstructure:"explain"`
	PerCategory int  `yaml:"per_category" mapstructure:"per_category"`
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
	v.SetEnvPrefix("SHOWROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "showroom.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("finance.default_interest_rate", 5.0)
	v.SetDefault("finance.default_money_factor", 0.002)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("advisor.explain", false)
	v.SetDefault("advisor.per_category", 5)

	def := match.DefaultConfig()
	v.SetDefault("match.near_budget_band", def.NearBudgetBand)
	v.SetDefault("match.close_budget_band", def.CloseBudgetBand)
	v.SetDefault("match.near_budget_bonus", def.NearBudgetBonus)
	v.SetDefault("match.close_budget_bonus", def.CloseBudgetBonus)
	v.SetDefault("match.under_budget_bonus", def.UnderBudgetBonus)
	v.SetDefault("match.over_budget_penalty", def.OverBudgetPen)
	v.SetDefault("match.fuel_match_bonus", def.FuelMatchBonus)
	v.SetDefault("match.fuel_mismatch_penalty", def.FuelMismatchPen)
	v.SetDefault("match.drive_match_bonus", def.DriveMatchBonus)
	v.SetDefault("match.mpg_cap", def.MPGCap)
	v.SetDefault("match.mpg_weight", def.MPGWeight)
	v.SetDefault("match.feature_bonus", def.FeatureBonus)
	v.SetDefault("match.top_n", def.TopN)

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

// Validate checks the configuration for a given run mode. Modes with
// external requirements (generate, explain) check their credentials here
// rather than failing mid-run.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Path == "" {
			problems = append(problems, "store.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for the postgres driver")
		}
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}

	if c.Match.TopN < 1 {
		problems = append(problems, "match.top_n must be >= 1")
	}

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Advisor.Explain && c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required when advisor.explain is on")
		}
	case "generate":
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
		if c.Advisor.PerCategory < 1 {
			problems = append(problems, "advisor.per_category must be >= 1")
		}
	case "cli":
		// Calculators and matching run offline.
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}
