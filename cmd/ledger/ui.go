package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/spice-ledger/internal/api"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/controller"
	"github.com/Veraticus/spice-ledger/internal/loop"
	"github.com/Veraticus/spice-ledger/internal/request"
	"github.com/Veraticus/spice-ledger/internal/tui"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	callbackBuffer     = 64
	healthCheckTimeout = 3 * time.Second
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the ledger in the terminal",
		Long: `Open the interactive ledger. It talks to the backend at server.url
(see "ledger serve"). Logs go to logging.file while the screen is in use.`,
		RunE: runUI,
	}

	cmd.Flags().String("server", "", "backend URL (overrides server.url)")
	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("generation-guard", true, "drop responses from superseded page renders")
	_ = viper.BindPFlag("server.url", cmd.Flags().Lookup("server"))
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("ui.generation_guard", cmd.Flags().Lookup("generation-guard"))

	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := checkServer(ctx, cfg.ServerURL); err != nil {
		return err
	}

	f, err := logFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := setupLogging(cfg, f); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	callbacks := loop.NewChan(callbackBuffer)
	transport := request.NewHTTPTransport(
		request.WithBaseURL(cfg.ServerURL),
		request.WithDispatcher(callbacks),
		request.WithContext(ctx),
	)

	slog.Info("Starting ledger UI", "server", cfg.ServerURL, "generation_guard", cfg.GenerationGuard)
	err = tui.Run(ctx,
		tui.WithServices(controller.ServicesFrom(api.NewClient(transport))),
		tui.WithCallbacks(callbacks.C),
		tui.WithTheme(themes.GetTheme(cfg.Theme)),
		tui.WithGenerationGuard(cfg.GenerationGuard),
	)
	if err != nil {
		common.LogError(err, "UI exited with error", common.Fields{"server": cfg.ServerURL})
	}
	return err
}

// checkServer fails fast when nothing answers at baseURL.
func checkServer(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health check: %w", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		msg := fmt.Sprintf("could not reach the ledger server at %s (start it with \"ledger serve\")", baseURL)
		return common.NewUserError(msg, err)
	}
	_ = res.Body.Close()
	return nil
}
