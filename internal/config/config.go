// Package config loads yearspans settings from defaults, an optional YAML
// file, YEARSPANS_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/yearspans/internal/engine"
	"github.com/roach88/yearspans/internal/gazetteer"
)

// EnvPrefix prefixes every environment variable: periodo.base_url is read
// from YEARSPANS_PERIODO_BASE_URL.
const EnvPrefix = "YEARSPANS"

// Defaults.
const (
	DefaultLanguage      = "en"
	DefaultLookupTimeout = engine.DefaultLookupTimeout
	DefaultPeriodOURL    = gazetteer.DefaultPeriodOBaseURL
	DefaultPeriodORate   = gazetteer.DefaultPeriodORate
	DefaultWorkers       = 4
)

// Config is the resolved configuration of one invocation.
type Config struct {
	Language      string        `mapstructure:"language"`
	Present       int           `mapstructure:"present"`
	Authority     string        `mapstructure:"authority"`
	DB            string        `mapstructure:"db"`
	Periods       []string      `mapstructure:"periods"`
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
	PeriodO       PeriodO       `mapstructure:"periodo"`
	Workers       int           `mapstructure:"workers"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// PeriodO configures the PeriodO HTTP gazetteer.
type PeriodO struct {
	Enabled bool    `mapstructure:"enabled"`
	BaseURL string  `mapstructure:"base_url"`
	Rate    float64 `mapstructure:"rate"`
}

// FlagKeys maps flag names to config keys for flags whose names differ
// from their key.
var FlagKeys = map[string]string{
	"lang":           "language",
	"lookup-timeout": "lookup_timeout",
	"periodo":        "periodo.enabled",
}

// Load builds the configuration. file is an explicit config file path;
// when empty, yearspans.yaml is searched for in the working directory and
// in $HOME/.config/yearspans. flags may be nil. Only flags the user set
// override lower layers.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("yearspans")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "yearspans"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("present", 0)
	v.SetDefault("authority", "")
	v.SetDefault("db", "")
	v.SetDefault("periods", []string{})
	v.SetDefault("lookup_timeout", DefaultLookupTimeout)
	v.SetDefault("periodo.enabled", false)
	v.SetDefault("periodo.base_url", DefaultPeriodOURL)
	v.SetDefault("periodo.rate", DefaultPeriodORate)
	v.SetDefault("workers", DefaultWorkers)
}

// bindFlags binds every flag whose name is a config key (or listed in
// FlagKeys). viper only lets a flag win when it was set on the command line.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key, ok := FlagKeys[f.Name]
		if !ok {
			key = f.Name
		}
		if !isKey(key) {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

func isKey(key string) bool {
	switch key {
	case "language", "present", "authority", "db", "periods", "lookup_timeout",
		"periodo.enabled", "periodo.base_url", "periodo.rate", "workers":
		return true
	}
	return false
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Language == "" {
		return fmt.Errorf("config: language is empty")
	}
	if c.Present < 0 {
		return fmt.Errorf("config: present must not be negative, got %d", c.Present)
	}
	if c.LookupTimeout < 0 {
		return fmt.Errorf("config: lookup_timeout must not be negative, got %s", c.LookupTimeout)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	if c.PeriodO.Enabled && c.PeriodO.BaseURL == "" {
		return fmt.Errorf("config: periodo.base_url is required when periodo is enabled")
	}
	return nil
}
