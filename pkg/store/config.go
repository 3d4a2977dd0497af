package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend kinds accepted by the "backend" config key.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
	KindDiskv  = "diskv"
)

// Config keys, also used as flag names by the commands package.
const (
	KeyBackend  = "backend"
	KeyPath     = "path"
	KeyLog      = "log"
	KeyLogLevel = "log_level"
)

const defaultPath = "~/.jotty/v1.db"

// Config selects and locates the journal backend.
type Config struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	Log      string `mapstructure:"log"`
	LogLevel string `mapstructure:"log_level"`
}

// Validate checks the backend kind, that durable backends have a path, and
// the log level.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(KindMemory, KindSQLite, KindDiskv)),
		validation.Field(&c.Path, validation.When(c.Backend != KindMemory, validation.Required)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// Durable reports whether the configured backend survives a restart.
func (c *Config) Durable() bool {
	return c.Backend != KindMemory
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, KindSQLite)
	v.SetDefault(KeyPath, defaultPath)
	v.SetDefault(KeyLog, "")
	v.SetDefault(KeyLogLevel, "info")
}

// LoadConfig reads .jotty.yaml from $JOTTY_CONFIG_PATH, the working
// directory or $HOME, overlays JOTTY_* environment variables and any flags
// already bound to v, and returns the validated result.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetConfigName(".jotty") // .yaml is implicit
	v.SetEnvPrefix("JOTTY")
	v.AutomaticEnv()

	if override := os.Getenv("JOTTY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("store: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("store: invalid config: %w", err)
	}
	if cfg.Durable() {
		path, err := homedir.Expand(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("store: expand path: %w", err)
		}
		cfg.Path = path
	}
	return cfg, nil
}
