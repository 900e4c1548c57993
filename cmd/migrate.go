package cmd

import (
	"context"
	"database/sql"

	"github.com/huynhdieutuong/DevCamper-API/config"
	"github.com/huynhdieutuong/DevCamper-API/migrations"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := sql.Open("mysql", cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := runMigrations(cmd.Context(), db); err != nil {
			return err
		}
		logrus.Info("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
