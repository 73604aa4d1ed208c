package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	var portalAlias string
	var storeID int64

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show dashboard aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, portalAlias, storeID)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")
	cmd.Flags().Int64Var(&storeID, "store", 0, "Scope to a store ID (admin only; ignored server-side for managers)")

	return cmd
}

func runDashboard(cmd *cobra.Command, portalAlias string, storeID int64) error {
	sess, apiClient, err := requireSession("dashboard", portalAlias)
	if err != nil {
		return err
	}

	summary, err := apiClient.Dashboard(cmd.Context(), client.ListOptions{StoreID: storeID})
	if err != nil {
		return err
	}

	scope := "all stores"
	if storeID > 0 {
		scope = fmt.Sprintf("store %d", storeID)
	} else if id, ok := sess.ManagedStoreID(); ok {
		scope = fmt.Sprintf("store %d", id)
	}

	fmt.Printf("Dashboard (%s):\n\n", scope)
	fmt.Printf("  Products:        %d\n", summary.TotalProducts)
	fmt.Printf("  Suppliers:       %d\n", summary.TotalSuppliers)
	fmt.Printf("  Units in stock:  %d\n", summary.TotalStock)
	fmt.Printf("  Low stock items: %d\n", summary.LowStockItems)
	fmt.Printf("  Inventory value: %.2f\n", summary.InventoryValue)

	return nil
}
