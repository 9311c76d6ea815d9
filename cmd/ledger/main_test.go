package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "ledger dev\n", out.String())
}

func TestSetupLogging(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	require.NoError(t, setupLogging(config.Config{LogLevel: "debug", LogFormat: "json"}, &buf))
	slog.Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	assert.Error(t, setupLogging(config.Config{LogLevel: "loud", LogFormat: "json"}, &buf))
}

func TestLogFile_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/ledger.log"
	f, err := logFile(path)
	require.NoError(t, err)
	_ = f.Close()
	assert.FileExists(t, path)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"ui", "serve", "migrate", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestCheckServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
	}))
	defer srv.Close()

	assert.NoError(t, checkServer(context.Background(), srv.URL+"/"))

	srv.Close()
	err := checkServer(context.Background(), srv.URL)
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "ledger serve")
}
