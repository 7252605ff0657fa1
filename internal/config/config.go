// Package config loads oficina settings.
//
// Sources, lowest to highest precedence: built-in defaults, the oficina.toml
// config file, OFICINA_* environment variables (optionally seeded from a .env
// file) and command-line flags bound by the caller.
//
// Example oficina.toml:
//
//	data_dir = "/var/lib/oficina"
//
//	[log]
//	level = "info"
//	file = "/var/log/oficina.log"
//
//	[shell]
//	watch = true
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/micaelyMelo/OficinaMecanica/internal/logging"
)

const (
	// FileName is the config file searched in the working directory and
	// in $HOME/.config/oficina.
	FileName = "oficina.toml"

	// EnvPrefix prefixes every environment override, e.g. OFICINA_DATA_DIR.
	EnvPrefix = "OFICINA"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// Config holds every setting.
type Config struct {
	// DataDir holds clientes.txt, veiculos.txt and ordens.txt.
	DataDir string `mapstructure:"data_dir" toml:"data_dir" validate:"required"`

	Log   LogConfig   `mapstructure:"log" toml:"log"`
	UI    UIConfig    `mapstructure:"ui" toml:"ui"`
	Shell ShellConfig `mapstructure:"shell" toml:"shell"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level      string `mapstructure:"level" toml:"level" validate:"loglevel"`
	File       string `mapstructure:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" validate:"gte=0"`
}

// UIConfig configures terminal rendering.
type UIConfig struct {
	Color bool `mapstructure:"color" toml:"color"`
}

// ShellConfig configures the interactive menu.
type ShellConfig struct {
	// Watch reloads the data dir when another process changes its files.
	Watch bool `mapstructure:"watch" toml:"watch"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir: ".",
		Log: LogConfig{
			Level:      logging.DefaultLevel,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		UI:    UIConfig{Color: true},
		Shell: ShellConfig{Watch: false},
	}
}

// Logging converts the log section into a logging.Config.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config path. When empty, FileName is
	// searched in SearchPaths.
	ConfigFile string

	// SearchPaths defaults to the working directory and $HOME/.config/oficina.
	SearchPaths []string

	// EnvFile defaults to DotEnvFile. A missing file is not an error.
	EnvFile string
}

// Load reads the configuration into v and decodes it. Flags the caller bound
// to v with BindPFlag take precedence over every other source.
//
// A missing config file is not an error unless opts.ConfigFile names it.
func Load(v *viper.Viper, opts Options) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DotEnvFile
	}
	if err := loadDotEnv(envFile); err != nil {
		return Config{}, err
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("toml")
		paths := opts.SearchPaths
		if paths == nil {
			paths = defaultSearchPaths()
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("ui.color", d.UI.Color)
	v.SetDefault("shell.watch", d.Shell.Watch)
}

func defaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "oficina"))
	}
	return paths
}

// loadDotEnv seeds the environment from path. Variables already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
