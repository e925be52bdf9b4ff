// Package config handles configuration loading for Rocket Screener.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	FMP       FMPConfig       `mapstructure:"fmp"       yaml:"fmp"`
	News      NewsConfig      `mapstructure:"news"      yaml:"news"`
	Dedupe    DedupeConfig    `mapstructure:"dedupe"    yaml:"dedupe"`
	Selection SelectionConfig `mapstructure:"selection" yaml:"selection"`
	HotStock  HotStockConfig  `mapstructure:"hotstock"  yaml:"hotstock"`
	Universe  UniverseConfig  `mapstructure:"universe"  yaml:"universe"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// FMPConfig holds Financial Modeling Prep API settings.
type FMPConfig struct {
	APIKey     string `mapstructure:"api_key"      yaml:"api_key"`
	BaseURL    string `mapstructure:"base_url"     yaml:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec"  yaml:"timeout_sec"`
	RatePerSec int    `mapstructure:"rate_per_sec" yaml:"rate_per_sec"`
}

// NewsConfig holds news ingestion settings.
type NewsConfig struct {
	StockLimit   int       `mapstructure:"stock_limit"   yaml:"stock_limit"`
	GeneralLimit int       `mapstructure:"general_limit" yaml:"general_limit"`
	RSSFeeds     []RSSFeed `mapstructure:"rss_feeds"     yaml:"rss_feeds"`
}

// RSSFeed identifies one supplementary RSS news source.
type RSSFeed struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// DedupeConfig holds deduplication settings.
type DedupeConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
}

// SelectionConfig holds the top-K slate constraints.
type SelectionConfig struct {
	MinCount      int `mapstructure:"min_count"       yaml:"min_count"`
	MaxCount      int `mapstructure:"max_count"       yaml:"max_count"`
	MaxLowQuality int `mapstructure:"max_low_quality" yaml:"max_low_quality"`
}

// HotStockConfig holds candidate scoring and enrichment settings.
type HotStockConfig struct {
	Workers      int `mapstructure:"workers"       yaml:"workers"`
	Limit        int `mapstructure:"limit"         yaml:"limit"`
	NewsTopN     int `mapstructure:"news_top_n"    yaml:"news_top_n"`
	CacheTTLSec  int `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"` // 0 = no expiry
}

// UniverseConfig holds the allow-set of surfaceable tickers.
type UniverseConfig struct {
	Seed     []string `mapstructure:"seed"     yaml:"seed"`
	Priority []string `mapstructure:"priority" yaml:"priority"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.rocketscreener/config.yaml (home directory)
//  3. /etc/rocketscreener/config.yaml (system)
//
// Environment variables override config file values.
// Format: ROCKETSCREENER_<SECTION>_<KEY>, e.g., ROCKETSCREENER_FMP_API_KEY
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".rocketscreener"))
	v.AddConfigPath("/etc/rocketscreener")

	v.SetEnvPrefix("ROCKETSCREENER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("ROCKETSCREENER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// FMP defaults
	v.SetDefault("fmp.base_url", "https://financialmodelingprep.com/stable")
	v.SetDefault("fmp.timeout_sec", 30)
	v.SetDefault("fmp.rate_per_sec", 5)

	// News defaults
	v.SetDefault("news.stock_limit", 100)
	v.SetDefault("news.general_limit", 50)

	// Dedupe defaults
	v.SetDefault("dedupe.similarity_threshold", 0.7)

	// Selection defaults
	v.SetDefault("selection.min_count", 5)
	v.SetDefault("selection.max_count", 8)
	v.SetDefault("selection.max_low_quality", 2)

	// Hot stock defaults
	v.SetDefault("hotstock.workers", 8)
	v.SetDefault("hotstock.limit", 10)
	v.SetDefault("hotstock.news_top_n", 10)
	v.SetDefault("hotstock.cache_ttl_sec", 0) // entries live until flushed

	// Universe defaults: mega caps + notable tech seed, merged with the
	// S&P 500 constituents at run time.
	v.SetDefault("universe.seed", SeedUniverse)
	v.SetDefault("universe.priority", PriorityTickers)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("ROCKETSCREENER_FMP_API_KEY"); key != "" {
		cfg.FMP.APIKey = key
	}
	if key := os.Getenv("FMP_API_KEY"); key != "" && cfg.FMP.APIKey == "" {
		cfg.FMP.APIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
