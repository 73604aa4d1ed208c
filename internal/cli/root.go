package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cli/commands"
	"github.com/storekeep-dev/storekeep/internal/config"
	"github.com/storekeep-dev/storekeep/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "storekeep",
	Short: "Storekeep - Retail portal from your terminal",
	Long: `Storekeep CLI - Manage your retail chain without leaving the terminal.

Browse the catalog, check inventory and suppliers, export reports, and keep
a local snapshot for offline use. Authentication happens against your
Storekeep portal; credentials never leave this machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Logger setup must not block commands when the environment is off
		cfg, err := config.Load()
		if err != nil {
			logger.Init("warn", "console")
			return
		}
		logger.Init(cfg.LogLevel, cfg.LogFormat)
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("storekeep version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewProductsCmd())
	rootCmd.AddCommand(commands.NewInventoryCmd())
	rootCmd.AddCommand(commands.NewSuppliersCmd())
	rootCmd.AddCommand(commands.NewDashboardCmd())
	rootCmd.AddCommand(commands.NewStoresCmd())
	rootCmd.AddCommand(commands.NewExportCmd())
	rootCmd.AddCommand(commands.NewSyncCmd())
	rootCmd.AddCommand(commands.NewSelectPortalCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
