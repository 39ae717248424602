// Package config loads highstill settings from defaults, an optional config
// file, a .env file and HIGHSTILL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/nissyi-gh/highstill/internal/model"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	DefaultKey = model.StorageKey

	envPrefix = "HIGHSTILL"
)

// Config is the full application configuration.
type Config struct {
	Storage Storage `mapstructure:"storage"`
	UI      UI      `mapstructure:"ui"`
	Log     Log     `mapstructure:"log"`
}

// Storage selects and locates the persistence backend.
type Storage struct {
	Backend string `mapstructure:"backend" validate:"oneof=sqlite file memory"`
	// Path is the database file for sqlite and the directory for file.
	// Empty means the XDG data directory.
	Path string `mapstructure:"path"`
	Key  string `mapstructure:"key" validate:"required"`
}

type UI struct {
	Sort   string `mapstructure:"sort" validate:"oneof=date-asc date-desc title-asc title-desc priority default"`
	Locale string `mapstructure:"locale" validate:"required,bcp47_language_tag"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File receives log output while the TUI is running. Empty means the XDG state directory.
	File string `mapstructure:"file"`
}

var validate = validator.New()

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.key", DefaultKey)
	v.SetDefault("ui.sort", "date-desc")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads configuration into a validated Config. cfgFile may be empty, in
// which case .highstill.yaml in the working directory and
// $XDG_CONFIG_HOME/highstill/config.yaml are searched.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".highstill")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value: %v)", e.Namespace(), e.Tag(), e.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files. Missing files are skipped;
// variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "highstill"), nil
}

// StateDir returns $XDG_STATE_HOME/highstill (or ~/.local/state/highstill), creating it.
func StateDir() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, "highstill")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
