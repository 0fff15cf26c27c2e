package commands

import (
	"github.com/spf13/cobra"
	"github.com/yigit/placementportal/internal/pkg/logger"
	"github.com/yigit/placementportal/internal/server"
)

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	srv, err := server.NewServer(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
