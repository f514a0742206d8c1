package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SIGNUP_CLIENT_ENDPOINT.
const EnvPrefix = "SIGNUP"

// Config holds application configuration.
type Config struct {
	Client  ClientConfig  `mapstructure:"client"`
	Server  ServerConfig  `mapstructure:"server"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Render  RenderConfig  `mapstructure:"render"`
	Log     LogConfig     `mapstructure:"log"`
}

// ClientConfig holds the signup endpoint settings.
type ClientConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds dev server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// FailStatus makes the stub endpoint answer every signup with this
	// status. Zero validates normally.
	FailStatus int `mapstructure:"fail_status"`
}

// DatasetConfig points at an optional country/region override file.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// RenderConfig holds presentation settings.
type RenderConfig struct {
	Renderer     string            `mapstructure:"renderer"`
	Locale       string            `mapstructure:"locale"`
	Title        string            `mapstructure:"title"`
	TemplatesDir string            `mapstructure:"templates_dir"`
	Theme        string            `mapstructure:"theme"`
	Variant      string            `mapstructure:"variant"`
	Vars         map[string]string `mapstructure:"vars"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from path (or ./signup.yaml when empty) and the
// environment. A missing default file is not an error; a missing explicit
// file is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("client.endpoint", "http://localhost:3000/newsletter-signup")
	v.SetDefault("client.timeout", 0)
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.fail_status", 0)
	v.SetDefault("dataset.path", "")
	v.SetDefault("render.renderer", "html")
	v.SetDefault("render.locale", "en")
	v.SetDefault("render.title", "Newsletter signup")
	v.SetDefault("render.templates_dir", "")
	v.SetDefault("render.theme", "")
	v.SetDefault("render.variant", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("signup")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Client.Endpoint) == "" {
		return errors.New("config: client.endpoint is required")
	}
	if c.Client.Timeout < 0 {
		return fmt.Errorf("config: client.timeout must not be negative, got %s", c.Client.Timeout)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log level %q", name)
	}
	return level, nil
}
