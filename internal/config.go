package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "digifarmer"

// Config keys
const (
	KeyAPIBaseURL  = "api.base_url"
	KeyAPITimeout  = "api.timeout"
	KeyStorePath   = "store.path"
	KeyCacheBound  = "cache.bound"
	KeyLanguage    = "language"
	KeyConcurrency = "concurrency"
)

// Config is the runtime configuration of the layer
type Config struct {
	APIBaseURL  string
	APITimeout  time.Duration
	StorePath   string
	CacheBound  int
	Language    string
	Concurrency int
}

// NewViper returns a viper instance with defaults, DIGIFARMER_* env
// binding and an optional ~/.digifarmer.yaml (or ./.digifarmer.yaml)
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("." + appName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIBaseURL, "http://localhost:8001")
	v.SetDefault(KeyAPITimeout, DefaultRequestTimeout)
	v.SetDefault(KeyStorePath, defaultStorePath())
	v.SetDefault(KeyCacheBound, DefaultCacheBound)
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyConcurrency, 4)
	return v
}

// LoadConfig reads the config file (if any) and resolves all settings
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		LogDebug("Using config file %s", v.ConfigFileUsed())
	}

	cfg := &Config{
		APIBaseURL:  v.GetString(KeyAPIBaseURL),
		APITimeout:  v.GetDuration(KeyAPITimeout),
		StorePath:   v.GetString(KeyStorePath),
		CacheBound:  v.GetInt(KeyCacheBound),
		Language:    v.GetString(KeyLanguage),
		Concurrency: v.GetInt(KeyConcurrency),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the resolved settings
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("config: %s is required", KeyAPIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("config: %s must be positive, got %s", KeyAPITimeout, c.APITimeout)
	}
	if c.StorePath == "" {
		return fmt.Errorf("config: %s is required", KeyStorePath)
	}
	if c.CacheBound < 1 {
		return fmt.Errorf("config: %s must be at least 1, got %d", KeyCacheBound, c.CacheBound)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("config: %s must be at least 1, got %d", KeyConcurrency, c.Concurrency)
	}
	return nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "."+appName, "store.db")
	}
	return filepath.Join(home, "."+appName, "store.db")
}
