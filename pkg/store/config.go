package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/spreads/pkg/period"
)

const (
	StorageDiskv  = "diskv"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config is the resolved runtime configuration.
type Config struct {
	Storage      string `json:"storage"`
	Path         string `json:"path"`
	FirstWeekday string `json:"first_weekday"`
	Timezone     string `json:"timezone"`
	Events       bool   `json:"events"`
	LogDebug     bool   `json:"log_debug"`
	LogDir       string `json:"log_dir"`
	// File is the config file that was read, if any.
	File string `json:"file,omitempty"`
}

// LoadConfig reads .spreads.(yaml|toml|json) from $SPREADS_CONFIG_PATH, the
// working directory or $HOME, overlaid with SPREADS_* environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("storage", StorageDiskv)
	v.SetDefault("path", "~/.spreads.db")
	v.SetDefault("first_weekday", "sunday")
	v.SetDefault("timezone", "")
	v.SetDefault("events", true)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", "")
	v.SetConfigName(".spreads")
	v.SetEnvPrefix("SPREADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("SPREADS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logDir, err := homedir.Expand(v.GetString("log.dir"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log dir: %w", err)
	}

	cfg := &Config{
		Storage:      strings.ToLower(v.GetString("storage")),
		Path:         path,
		FirstWeekday: v.GetString("first_weekday"),
		Timezone:     v.GetString("timezone"),
		Events:       v.GetBool("events"),
		LogDebug:     v.GetBool("log.debug"),
		LogDir:       logDir,
		File:         v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the storage kind, weekday and timezone.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageDiskv, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("store: unknown storage %q", c.Storage)
	}
	if _, err := c.Calendar(); err != nil {
		return err
	}
	return nil
}

// BasePath is the diskv root directory.
func (c *Config) BasePath() string {
	return c.Path
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Path, "spreads.sqlite")
}

// Calendar builds the calendar context used for every date comparison.
func (c *Config) Calendar() (period.Calendar, error) {
	cal := period.DefaultCalendar()
	if c.FirstWeekday != "" {
		wd, err := period.ParseWeekday(c.FirstWeekday)
		if err != nil {
			return cal, fmt.Errorf("store: first_weekday: %w", err)
		}
		cal.FirstWeekday = wd
	}
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return cal, fmt.Errorf("store: timezone: %w", err)
		}
		cal.Location = loc
	}
	return cal, nil
}
