package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEDGER_TEST_DIR", "/srv/ledger")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"home", "~", home},
		{"under home", "~/data/ledger.db", filepath.Join(home, "data", "ledger.db")},
		{"env var", "$LEDGER_TEST_DIR/ledger.db", "/srv/ledger/ledger.db"},
		{"absolute", "/tmp/ledger.db", "/tmp/ledger.db"},
		{"tilde in middle", "/tmp/~/x", "/tmp/~/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8420", cfg.ServerURL)
	assert.Equal(t, "127.0.0.1:8420", cfg.ServerAddr)
	assert.True(t, cfg.GenerationGuard)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, filepath.IsAbs(cfg.StoragePath))
	assert.True(t, filepath.IsAbs(cfg.LogFile))
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyGenerationGuard, false)
	v.Set(KeyServerURL, "https://ledger.example.com")
	v.Set(KeyLogFormat, "json")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.False(t, cfg.GenerationGuard)
	assert.Equal(t, "https://ledger.example.com", cfg.ServerURL)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want error
	}{
		{"missing url", KeyServerURL, "", common.ErrMissingConfig},
		{"relative url", KeyServerURL, "/api", common.ErrInvalidConfig},
		{"bad level", KeyLogLevel, "loud", common.ErrInvalidConfig},
		{"bad format", KeyLogFormat, "xml", common.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
