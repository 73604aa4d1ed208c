package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <portal-url>",
		Short: "Init a new storekeep portal configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	portalURL := args[0]

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Println("Found existing storekeep.json")
	} else {
		cfg = &config.Config{
			Portals: []config.Portal{},
		}
		isNewConfig = true
	}

	// Check if portal already exists
	portalExists := false
	for _, portal := range cfg.Portals {
		if portal.URL == portalURL {
			portalExists = true
			break
		}
	}

	if portalExists {
		fmt.Printf("Portal with URL %s already exists in storekeep.json\n", portalURL)
	} else {
		alias := "production"
		if len(cfg.Portals) > 0 {
			alias = fmt.Sprintf("portal-%d", len(cfg.Portals)+1)
		}

		cfg.Portals = append(cfg.Portals, config.Portal{
			URL:   portalURL,
			Alias: alias,
		})

		if err := config.Save(configPath, cfg); err != nil {
			return err
		}

		if isNewConfig {
			fmt.Printf("✓ Created ./storekeep.json with portal %s (%s)\n", portalURL, alias)
		} else {
			fmt.Printf("✓ Added portal %s (%s) to ./storekeep.json\n", portalURL, alias)
		}
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'storekeep login' to authenticate")
	fmt.Println("  2. Run 'storekeep dashboard' to check your stores")

	return nil
}
