// Package config loads studyslot's optional YAML config file. Values come
// from defaults, then the file, then STUDYSLOT_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
	"github.com/julianstephens/studyslot/internal/utils"
)

type Config struct {
	// Database is a SQLite path, a PostgreSQL connection string, or
	// "keyring" to read the connection string from the OS keyring.
	Database string        `mapstructure:"database"`
	Debug    bool          `mapstructure:"debug"`
	Timezone string        `mapstructure:"timezone"`
	Catalog  CatalogConfig `mapstructure:"catalog"`
}

type CatalogConfig struct {
	Days    []string           `mapstructure:"days"`
	Periods []models.TimeRange `mapstructure:"periods"`
}

// DefaultDir is ~/.config/studyslot.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", constants.AppName)
	}
	return filepath.Join(home, ".config", constants.AppName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func setDefaults(v *viper.Viper) {
	def := scheduler.DefaultCatalog()

	days := make([]string, 0, len(def.Days))
	for _, d := range def.Days {
		days = append(days, strings.ToLower(d.String()))
	}
	periods := make([]map[string]string, 0, len(def.Periods))
	for _, p := range def.Periods {
		periods = append(periods, map[string]string{"start": p.Start, "end": p.End})
	}

	v.SetDefault("database", constants.DefaultConfigPath)
	v.SetDefault("debug", false)
	v.SetDefault("timezone", "")
	v.SetDefault("catalog.days", days)
	v.SetDefault("catalog.periods", periods)
}

// Load reads configuration. An empty file means config.yaml in DefaultDir,
// which is optional; an explicit file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(ExpandHome(file))
	} else {
		v.SetConfigName(constants.DefaultConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Database = ExpandHome(cfg.Database)

	if cfg.Timezone != "" && !utils.ValidateTimezone(cfg.Timezone) {
		return nil, fmt.Errorf("invalid timezone %q", cfg.Timezone)
	}
	return cfg, nil
}

// BuildCatalog turns the catalog section into a validated scheduler.Catalog.
func (c *Config) BuildCatalog() (scheduler.Catalog, error) {
	cat := scheduler.Catalog{
		Periods: append([]models.TimeRange(nil), c.Catalog.Periods...),
	}
	for _, raw := range c.Catalog.Days {
		d, err := models.ParseWeekday(raw)
		if err != nil {
			return scheduler.Catalog{}, fmt.Errorf("catalog.days: %w", err)
		}
		cat.Days = append(cat.Days, d)
	}
	if err := cat.Validate(); err != nil {
		return scheduler.Catalog{}, err
	}
	return cat, nil
}
