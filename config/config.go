package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration, loadable from a config file or
// KERJAKU_-prefixed environment variables.
type Config struct {
	Port         int    `mapstructure:"port"`
	CacheDBPath  string `mapstructure:"cache_db_path"`
	RemoteURL    string `mapstructure:"remote_url"`
	AnonKey      string `mapstructure:"anon_key"`
	BaseURL      string `mapstructure:"base_url"`
	AuthUser     string `mapstructure:"auth_user"`
	AuthPass     string `mapstructure:"auth_pass"`
	LogLevel     string `mapstructure:"log_level"`
	ProbeAddr    string `mapstructure:"probe_addr"`
	ProbeTimeout int    `mapstructure:"probe_timeout_ms"`
}

// LoadConfig reads configuration with viper, applying defaults and
// environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix("KERJAKU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("kerjaku")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("cache_db_path", "kerjaku.db")
	v.SetDefault("remote_url", "http://localhost:54321")
	v.SetDefault("anon_key", "")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("auth_user", "admin")
	v.SetDefault("auth_pass", "password")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("probe_addr", "1.1.1.1:443")
	v.SetDefault("probe_timeout_ms", 1500)
}
