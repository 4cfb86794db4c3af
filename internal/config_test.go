package internal

import (
	"strings"
	"testing"
	"time"

	"github.com/iksnae/digifarmer-sync/testutil"
)

// isolateHome points HOME at a temp dir so a real ~/.digifarmer.yaml is never read
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadConfig_Defaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := LoadConfig(NewViper())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8001" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != DefaultRequestTimeout {
		t.Errorf("APITimeout = %v, want %v", cfg.APITimeout, DefaultRequestTimeout)
	}
	if cfg.CacheBound != DefaultCacheBound {
		t.Errorf("CacheBound = %d, want %d", cfg.CacheBound, DefaultCacheBound)
	}
	if cfg.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", cfg.Language, DefaultLanguage)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
	if !strings.HasPrefix(cfg.StorePath, home) {
		t.Errorf("StorePath = %q, want under %q", cfg.StorePath, home)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	isolateHome(t)
	t.Setenv("DIGIFARMER_API_BASE_URL", "https://advisory.example.org")
	t.Setenv("DIGIFARMER_API_TIMEOUT", "5s")
	t.Setenv("DIGIFARMER_CACHE_BOUND", "3")
	t.Setenv("DIGIFARMER_LANGUAGE", "kn")

	cfg, err := LoadConfig(NewViper())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.APIBaseURL != "https://advisory.example.org" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("APITimeout = %v, want 5s", cfg.APITimeout)
	}
	if cfg.CacheBound != 3 {
		t.Errorf("CacheBound = %d, want 3", cfg.CacheBound)
	}
	if cfg.Language != "kn" {
		t.Errorf("Language = %q, want kn", cfg.Language)
	}
}

func TestLoadConfig_File(t *testing.T) {
	home := isolateHome(t)
	testutil.WriteConfigFixture(t, home, `
api:
  base_url: http://10.0.0.5:8001
  timeout: 45s
store:
  path: /var/lib/digifarmer/store.db
cache:
  bound: 25
concurrency: 2
`)

	cfg, err := LoadConfig(NewViper())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := Config{
		APIBaseURL:  "http://10.0.0.5:8001",
		APITimeout:  45 * time.Second,
		StorePath:   "/var/lib/digifarmer/store.db",
		CacheBound:  25,
		Language:    DefaultLanguage,
		Concurrency: 2,
	}
	if *cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadConfig_EnvBeatsFile(t *testing.T) {
	home := isolateHome(t)
	testutil.WriteConfigFixture(t, home, "language: hi\n")
	t.Setenv("DIGIFARMER_LANGUAGE", "te")

	cfg, err := LoadConfig(NewViper())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Language != "te" {
		t.Errorf("Language = %q, want te", cfg.Language)
	}
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	home := isolateHome(t)
	testutil.WriteConfigFixture(t, home, "api: [unterminated\n")

	if _, err := LoadConfig(NewViper()); err == nil {
		t.Error("LoadConfig() error = nil for unparsable file")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		APIBaseURL:  "http://localhost:8001",
		APITimeout:  time.Second,
		StorePath:   "/tmp/store.db",
		CacheBound:  1,
		Concurrency: 1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"blank url", func(c *Config) { c.APIBaseURL = " " }, KeyAPIBaseURL},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }, KeyAPITimeout},
		{"no store", func(c *Config) { c.StorePath = "" }, KeyStorePath},
		{"zero bound", func(c *Config) { c.CacheBound = 0 }, KeyCacheBound},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, KeyConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
