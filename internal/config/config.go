// Package config loads optional cclink settings from ~/.pubky/config.yaml,
// overridable by CCLINK_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/johnzilla/cclink/internal/cryptocore"
)

// Config holds settings that tune cclink's default behavior. Every field
// has a workable default; the file and environment overrides are both
// optional.
type Config struct {
	DefaultTTL        time.Duration `yaml:"default_ttl"`
	TranscriptsDir    string        `yaml:"transcripts_dir"`
	AgentBinary       string        `yaml:"agent_binary"`
	MetricsEnabled    bool          `yaml:"metrics_enabled"`
	MetricsListenAddr string        `yaml:"metrics_listen_addr"`
	// PassphraseEnv, if set, names an environment variable that holds the
	// keystore passphrase, so it can be supplied non-interactively in
	// CI/test contexts instead of landing in shell history.
	PassphraseEnv string `yaml:"passphrase_env"`
	// PinMinScore raises the zxcvbn strength floor CheckPINStrength
	// enforces, for deployments that want a stricter PIN policy than the
	// package default.
	PinMinScore int `yaml:"pin_min_score"`
}

// Defaults returns the Config used when no file or environment override
// is present.
func Defaults() *Config {
	return &Config{
		DefaultTTL:        24 * time.Hour,
		AgentBinary:       "claude",
		MetricsEnabled:    false,
		MetricsListenAddr: ":9090",
		PinMinScore:       cryptocore.MinZxcvbnScore,
	}
}

// Load reads path (typically ~/.pubky/config.yaml) if present, applies a
// sibling .env file via godotenv if present, then layers CCLINK_*
// environment variables on top. A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	envPath := filepath.Join(filepath.Dir(path), ".env")
	_ = godotenv.Load(envPath) // optional; absence is not an error

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CCLINK_DEFAULT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DefaultTTL = d
		}
	}
	if v := os.Getenv("CCLINK_TRANSCRIPTS_DIR"); v != "" {
		cfg.TranscriptsDir = v
	}
	if v := os.Getenv("CCLINK_AGENT_BINARY"); v != "" {
		cfg.AgentBinary = v
	}
	if v := os.Getenv("CCLINK_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MetricsEnabled = b
		}
	}
	if v := os.Getenv("CCLINK_METRICS_LISTEN_ADDR"); v != "" {
		cfg.MetricsListenAddr = v
	}
	if v := os.Getenv("CCLINK_PASSPHRASE_ENV"); v != "" {
		cfg.PassphraseEnv = v
	}
	if v := os.Getenv("CCLINK_PIN_MIN_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PinMinScore = n
		}
	}
}

// DefaultPath returns ~/.pubky/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pubky", "config.yaml"), nil
}
