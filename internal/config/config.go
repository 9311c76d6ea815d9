package config

import (
	"fmt"
	"net/url"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/spf13/viper"
)

// Keys understood in the config file. Environment variables use the
// LEDGER_ prefix with dots replaced by underscores.
const (
	KeyServerURL       = "server.url"
	KeyServerAddr      = "server.addr"
	KeyStoragePath     = "storage.path"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyLogFile         = "logging.file"
	KeyGenerationGuard = "ui.generation_guard"
	KeyTheme           = "ui.theme"
)

// Config is the resolved application configuration.
type Config struct {
	ServerURL       string
	ServerAddr      string
	StoragePath     string
	LogLevel        string
	LogFormat       string
	LogFile         string
	Theme           string
	GenerationGuard bool
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerURL, "http://127.0.0.1:8420")
	v.SetDefault(KeyServerAddr, "127.0.0.1:8420")
	v.SetDefault(KeyStoragePath, "~/.local/share/ledger/ledger.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "~/.cache/ledger/ledger.log")
	v.SetDefault(KeyGenerationGuard, true)
	v.SetDefault(KeyTheme, "default")
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ServerURL:       v.GetString(KeyServerURL),
		ServerAddr:      v.GetString(KeyServerAddr),
		StoragePath:     ExpandPath(v.GetString(KeyStoragePath)),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		LogFile:         ExpandPath(v.GetString(KeyLogFile)),
		Theme:           v.GetString(KeyTheme),
		GenerationGuard: v.GetBool(KeyGenerationGuard),
	}

	if cfg.ServerURL == "" {
		return Config{}, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyServerURL)
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("%w: %s must be an absolute URL, got %q", common.ErrInvalidConfig, KeyServerURL, cfg.ServerURL)
	}
	if _, err := common.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("%w: %s must be console or json, got %q", common.ErrInvalidConfig, KeyLogFormat, cfg.LogFormat)
	}
	return cfg, nil
}
