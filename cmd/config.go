package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName    = "config"
	configType    = "toml"
	configDirName = ".scriptbridge"
	envPrefix     = "SB"
)

func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, configDirName)

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault("store.driver", "toml")
	cfg.SetDefault("store.path", filepath.Join(configDir, "store.toml"))
	cfg.SetDefault("store.sqlite_path", filepath.Join(configDir, "scriptbridge.db"))
	cfg.SetDefault("prompt.timeout", time.Minute)
	cfg.SetDefault("watchdog.threshold", 5*time.Second)
	cfg.SetDefault("watchdog.heartbeat", 100*time.Millisecond)
	cfg.SetDefault("http.timeout", 30*time.Second)
	cfg.SetDefault("render.endpoint", "")
	cfg.SetDefault("render.token", "")
	cfg.SetDefault("render.token_pass", "")
	cfg.SetDefault("render.timeout", 30*time.Second)
	cfg.SetDefault("artifacts.dir", filepath.Join(configDir, "artifacts"))
	cfg.SetDefault("router.require_appel", false)
	cfg.SetDefault("router.interpolate", true)
	cfg.SetDefault("router.interpolate_cmd", true)
	cfg.SetDefault("console.platform", "console")
	cfg.SetDefault("console.self_id", "sb")
	cfg.SetDefault("console.channel", "console")
	cfg.SetDefault("console.guild", "local")
	cfg.SetDefault("console.user_id", "local")
	cfg.SetDefault("console.user_name", envOrDefault("USER", "you"))
	cfg.SetDefault("console.direct", true)
	cfg.SetDefault("console.members", []string{})
	cfg.SetDefault("logging.level", "warn")
	cfg.SetDefault("logging.format", "text")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
