package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Ebay     EbayConfig     `yaml:"ebay" mapstructure:"ebay"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Saved    SavedConfig    `yaml:"saved" mapstructure:"saved"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Scrape   ScrapeConfig   `yaml:"scrape" mapstructure:"scrape"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// EbayConfig holds Finding API credentials and client tuning.
type EbayConfig struct {
	AppID          string  `yaml:"app_id" mapstructure:"app_id"`
	CertID         string  `yaml:"cert_id" mapstructure:"cert_id"`
	DevID          string  `yaml:"dev_id" mapstructure:"dev_id"`
	Environment    string  `yaml:"environment" mapstructure:"environment"`
	EntriesPerPage int     `yaml:"entries_per_page" mapstructure:"entries_per_page"`
	RatePerSec     float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst      int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// CatalogConfig points at the junkyard price sheet.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SavedConfig points at the saved-parts store file.
type SavedConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// AnalysisConfig tunes the market analysis runs.
type AnalysisConfig struct {
	WindowDays   int  `yaml:"window_days" mapstructure:"window_days"`
	Concurrency  int  `yaml:"concurrency" mapstructure:"concurrency"`
	TrimOutliers bool `yaml:"trim_outliers" mapstructure:"trim_outliers"`
}

// CacheConfig tunes the marketplace search cache.
type CacheConfig struct {
	Size       int `yaml:"size" mapstructure:"size"`
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// ScrapeConfig tunes listing-page fetches for the link flow.
type ScrapeConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	// Missing .env is fine; system env still applies.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CARPARTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare EBAY_* names are accepted alongside the prefixed form, so an
	// existing .env keeps working without the CARPARTS_ prefix.
	_ = v.BindEnv("ebay.app_id", "CARPARTS_EBAY_APP_ID", "EBAY_APP_ID")
	_ = v.BindEnv("ebay.cert_id", "CARPARTS_EBAY_CERT_ID", "EBAY_CERT_ID")
	_ = v.BindEnv("ebay.dev_id", "CARPARTS_EBAY_DEV_ID", "EBAY_DEV_ID")
	_ = v.BindEnv("ebay.environment", "CARPARTS_EBAY_ENVIRONMENT", "EBAY_ENVIRONMENT")

	// Defaults
	v.SetDefault("ebay.environment", "production")
	v.SetDefault("ebay.entries_per_page", 100)
	v.SetDefault("ebay.rate_per_sec", 1.0)
	v.SetDefault("ebay.rate_burst", 1)
	v.SetDefault("ebay.timeout_secs", 30)
	v.SetDefault("catalog.path", "Junkyard Pricing.csv")
	v.SetDefault("saved.path", "saved_parts.json")
	v.SetDefault("analysis.window_days", 30)
	v.SetDefault("analysis.concurrency", 3)
	v.SetDefault("analysis.trim_outliers", true)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl_minutes", 15)
	v.SetDefault("scrape.timeout_secs", 10)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("server.port", 5000)
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

// EbayConfigured reports whether Finding API credentials are present.
func (c *Config) EbayConfigured() bool {
	return c.Ebay.AppID != ""
}

// Validate checks the settings a command is about to rely on. mode is
// the command name.
func (c *Config) Validate(mode string) error {
	var problems []string

	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Ebay.Environment == "production" || c.Ebay.Environment == "sandbox",
		"ebay.environment must be production or sandbox")
	check(c.Analysis.WindowDays > 0, "analysis.window_days must be > 0")
	check(c.Analysis.Concurrency >= 1 && c.Analysis.Concurrency <= 10,
		"analysis.concurrency must be between 1 and 10")

	switch mode {
	case "serve":
		check(c.Server.Port > 0, "server.port must be > 0")
	case "analyze", "parts", "saved", "link", "export":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
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
