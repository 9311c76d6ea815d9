package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/spice-ledger/internal/server"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local ledger backend",
		Long: `Serve accounts, transactions and the current user from a SQLite
database. The schema is migrated on start.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().String("db", "", "database path (overrides storage.path)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("storage.path", cmd.Flags().Lookup("db"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("Serving ledger", "database", cfg.StoragePath, "addr", cfg.ServerAddr)
	handler := server.NewHandler(store, slog.Default())
	return server.ListenAndServe(ctx, cfg.ServerAddr, handler.Routes())
}
