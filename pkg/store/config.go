package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// Settings is the resolved agenda configuration. It satisfies Config.
type Settings struct {
	Path             string `json:"path" yaml:"path"`
	Timezone         string `json:"timezone" yaml:"timezone"`
	WeekStart        string `json:"week_start" yaml:"week_start"`
	VisibleStartHour int    `json:"visible_start_hour" yaml:"visible_start_hour"`
	VisibleEndHour   int    `json:"visible_end_hour" yaml:"visible_end_hour"`
	ConflictPolicy   string `json:"conflict_policy" yaml:"conflict_policy"`
	StrictResources  bool   `json:"strict_resources" yaml:"strict_resources"`
	LogLevel         string `json:"log_level" yaml:"log_level"`
	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
}

// LoadConfig reads .agenda.yaml from $AGENDA_CONFIG_PATH or the working
// directory. Every key can be overridden by an AGENDA_ prefixed variable.
func LoadConfig() (*Settings, error) {
	viper.SetDefault("path", "~/.agenda.db")
	viper.SetDefault("timezone", "Local")
	viper.SetDefault("week_start", "monday")
	viper.SetDefault("visible_start_hour", 1)
	viper.SetDefault("visible_end_hour", 23)
	viper.SetDefault("conflict_policy", "warn")
	viper.SetDefault("strict_resources", false)
	viper.SetDefault("log_level", "info")
	viper.SetConfigName(".agenda") // .yaml is implicit
	viper.SetEnvPrefix("AGENDA")
	viper.AutomaticEnv()

	if override := os.Getenv("AGENDA_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &Settings{
		Path:             path,
		Timezone:         viper.GetString("timezone"),
		WeekStart:        viper.GetString("week_start"),
		VisibleStartHour: viper.GetInt("visible_start_hour"),
		VisibleEndHour:   viper.GetInt("visible_end_hour"),
		ConflictPolicy:   viper.GetString("conflict_policy"),
		StrictResources:  viper.GetBool("strict_resources"),
		LogLevel:         viper.GetString("log_level"),
		ConfigFile:       viper.ConfigFileUsed(),
	}, nil
}

func (s *Settings) BasePath() string {
	return s.Path
}

// Location resolves Timezone; "Local" and empty mean time.Local.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("store: timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
