// Package daemon manages the Ascend daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ascend-app/ascend/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	AI            AIConfig            `toml:"ai"`
	Notifications NotificationsConfig `toml:"notifications"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
	Logging       LoggingConfig       `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// AIConfig controls the AI collaborator client. The API key is read
// from ASCEND_AI_KEY when unset here, so the config file can stay
// secret-free.
type AIConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
}

// NotificationsConfig throttles motivational messages.
type NotificationsConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// TelemetryConfig controls the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	policy := domain.DefaultNotificationPolicy()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7360,
		},
		AI: AIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Notifications: NotificationsConfig{
			MaxPerDay:  policy.MaxPerDay,
			QuietStart: policy.QuietStart,
			QuietEnd:   policy.QuietEnd,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(ascendHome(), "ascend.log"),
		},
	}
}

// LoadConfig reads config from ~/.ascend/config.toml, falling back to
// defaults. The AI key falls back to the ASCEND_AI_KEY environment
// variable.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(ascendHome(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("ASCEND_AI_KEY")
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.ascend/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(ascendHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Policy converts the config section into a notification policy.
func (c NotificationsConfig) Policy() domain.NotificationPolicy {
	policy := domain.DefaultNotificationPolicy()
	if c.MaxPerDay > 0 {
		policy.MaxPerDay = c.MaxPerDay
	}
	if c.QuietStart != "" {
		policy.QuietStart = c.QuietStart
	}
	if c.QuietEnd != "" {
		policy.QuietEnd = c.QuietEnd
	}
	return policy
}

// ascendHome returns the Ascend data directory.
func ascendHome() string {
	if env := os.Getenv("ASCEND_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ascend")
}

// AscendHome is exported for use by other packages.
func AscendHome() string {
	return ascendHome()
}
