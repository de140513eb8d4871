// Package config loads the bookkeeper settings from viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/alwaysmad/bookkeeper/internal/common"
)

// Viper keys.
const (
	KeyDatabasePath      = "database.path"
	KeyLoggingLevel      = "logging.level"
	KeyLoggingFormat     = "logging.format"
	KeyLoggingFile       = "logging.file"
	KeyBudgetDay         = "defaults.budgets.day"
	KeyBudgetWeek        = "defaults.budgets.week"
	KeyBudgetMonth       = "defaults.budgets.month"
	KeyDefaultCategories = "defaults.categories"
	KeyUITheme           = "ui.theme"
)

// DefaultDatabasePath is used when database.path is not set.
const DefaultDatabasePath = "~/.local/share/bookkeeper/bookkeeper.db"

// Config is the resolved application configuration.
type Config struct {
	Database DatabaseConfig
	Logging  LoggingConfig
	Defaults DefaultsConfig
	UI       UIConfig
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig selects the log level, format and destination.
// An empty File means stderr.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// DefaultsConfig holds the rows written on first run.
type DefaultsConfig struct {
	Categories  []string
	DayBudget   float64
	WeekBudget  float64
	MonthBudget float64
}

// UIConfig tunes the full-screen view.
type UIConfig struct {
	Theme string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, common.FormatConsole)
	v.SetDefault(KeyLoggingFile, "")
	v.SetDefault(KeyBudgetDay, 1000.0)
	v.SetDefault(KeyBudgetWeek, 7000.0)
	v.SetDefault(KeyBudgetMonth, 30000.0)
	v.SetDefault(KeyDefaultCategories, []string{"Groceries", "Home", "Other"})
	v.SetDefault(KeyUITheme, "default")
}

// Load reads the configuration from v and validates it. Paths are expanded.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Database: DatabaseConfig{Path: ExpandPath(v.GetString(KeyDatabasePath))},
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLoggingLevel),
			Format: v.GetString(KeyLoggingFormat),
			File:   ExpandPath(v.GetString(KeyLoggingFile)),
		},
		Defaults: DefaultsConfig{
			DayBudget:   v.GetFloat64(KeyBudgetDay),
			WeekBudget:  v.GetFloat64(KeyBudgetWeek),
			MonthBudget: v.GetFloat64(KeyBudgetMonth),
			Categories:  v.GetStringSlice(KeyDefaultCategories),
		},
		UI: UIConfig{Theme: v.GetString(KeyUITheme)},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case common.FormatConsole, common.FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	for key, amount := range map[string]float64{
		KeyBudgetDay:   c.Defaults.DayBudget,
		KeyBudgetWeek:  c.Defaults.WeekBudget,
		KeyBudgetMonth: c.Defaults.MonthBudget,
	} {
		if amount < 0 {
			return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, key)
		}
	}
	for _, name := range c.Defaults.Categories {
		if name == "" {
			return fmt.Errorf("%w: %s contains an empty name", common.ErrInvalidConfig, KeyDefaultCategories)
		}
	}
	return nil
}
