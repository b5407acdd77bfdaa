package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/cardsearch/internal/engine"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// CARDSEARCH_DB or CARDSEARCH_LOG_LEVEL.
const EnvPrefix = "CARDSEARCH"

// Config is the resolved CLI configuration. Values come from, in order of
// precedence: command-line flags, CARDSEARCH_* environment variables, the
// config file, and defaults.
type Config struct {
	DB        string    `mapstructure:"db"`
	PageSize  int       `mapstructure:"page_size"`
	CacheSize int       `mapstructure:"cache_size"`
	Lenient   bool      `mapstructure:"lenient"`
	Log       LogConfig `mapstructure:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"db":         "db",
	"page-size":  "page_size",
	"cache-size": "cache_size",
	"lenient":    "lenient",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// LoadConfig resolves the configuration. configFile may be empty; when set
// the file must exist. Flags in flags that were set on the command line
// override every other source.
func LoadConfig(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("db", "cards.db")
	v.SetDefault("page_size", engine.DefaultPageSize)
	v.SetDefault("cache_size", engine.DefaultCacheSize)
	v.SetDefault("lenient", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	// CARDSEARCH_LOG_LEVEL -> log.level
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", c.PageSize))
	}
	if c.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("cache_size must be positive, got %d", c.CacheSize))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
