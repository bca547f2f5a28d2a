package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/briefbot/internal/config"
	"github.com/sandevgo/briefbot/internal/storage/crm"
	"github.com/sandevgo/briefbot/pkg/log"
	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create an empty CRM database with the briefbot schema",
	Long: `Creates the CRM sqlite database at the configured path and applies the
schema migrations. Refuses to touch an existing database; normal runs
open the CRM read-only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		initEnv(ctx)
		appCfg := config.NewAppConfig(ctx)

		if _, err := os.Stat(appCfg.CRMDBPath); err == nil {
			return fmt.Errorf("database already exists at %s", appCfg.CRMDBPath)
		}
		if err := os.MkdirAll(filepath.Dir(appCfg.CRMDBPath), 0o755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}

		db, err := sql.Open("sqlite3", appCfg.CRMDBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := crm.Migrate(ctx, db); err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Str("path", appCfg.CRMDBPath).Msg("crm database initialized")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
