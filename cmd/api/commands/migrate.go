package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yigit/placementportal/internal/bootstrap"
)

// migrateCmd applies pending SQL migrations and exits
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply every SQL file in the migrations directory that has not been
applied yet, in file name order, then exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func runMigrate(ctx context.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	return bootstrap.RunMigrations(ctx, cfg, database, lgr)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
