package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd runs the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "placementportal",
	Short: "Placement portal API",
	Long: `Placement portal API connecting students and employers.

Without a subcommand the HTTP server is started, same as "serve".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the YAML configuration file")
}
