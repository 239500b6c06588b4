package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type NovaPagerConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Path        string `mapstructure:"path"`
		CreatePages uint32 `mapstructure:"create_pages"`
	} `mapstructure:"storage"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Shell struct {
		Prompt  string `mapstructure:"prompt"`
		History string `mapstructure:"history"`
	} `mapstructure:"shell"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novapager")
	v.SetDefault("storage.path", "novapager.db")
	v.SetDefault("storage.create_pages", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("shell.prompt", "db > ")
	v.SetDefault("shell.history", "")
}

// LoadConfig reads the YAML file at path on top of the defaults.
// An empty path yields the defaults plus NOVAPAGER_* environment overrides.
func LoadConfig(path string) (*NovaPagerConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("novapager")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaPagerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LogLevel maps log.level to a slog level. Unknown values fall back to info.
func (c *NovaPagerConfig) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
