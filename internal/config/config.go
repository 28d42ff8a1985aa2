package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig `mapstructure:"session"`
	Logging  LoggingConfig `mapstructure:"logging"`

	// Runtime flags set from the command line, not the config file.
	MigrateOnly bool `mapstructure:"-"` // run migrations and exit
	ResetStore  bool `mapstructure:"-"` // force a destructive reset before opening
}

type AppConfig struct {
	Mode string // "debug" or "release"
}

type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
}

type SessionConfig struct {
	Secret          string        `mapstructure:"secret"`
	ExpireTime      time.Duration `mapstructure:"expire_hours"`
	KeystoreService string        `mapstructure:"keystore_service"`
}

type LoggingConfig struct {
	Dir string `mapstructure:"dir"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("STEMLEARN")
	viper.AutomaticEnv()

	viper.BindEnv("app.mode", "APP_MODE")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("session.secret", "SESSION_SECRET")
	viper.BindEnv("logging.dir", "LOG_DIR")

	viper.SetDefault("app.mode", "debug")
	viper.SetDefault("database.path", "stem_learning.db")
	viper.SetDefault("database.busy_timeout_ms", 5000)
	viper.SetDefault("session.expire_hours", 720)
	viper.SetDefault("session.keystore_service", "stemlearn")
	viper.SetDefault("logging.dir", "logs")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Session.ExpireTime = cfg.Session.ExpireTime * time.Hour

	if cfg.App.Mode == "release" && len(cfg.Session.Secret) < 32 {
		return nil, fmt.Errorf("session secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.Session.Secret))
	}

	return &cfg, nil
}
