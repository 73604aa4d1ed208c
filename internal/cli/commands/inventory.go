package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
)

// NewInventoryCmd creates the inventory command
func NewInventoryCmd() *cobra.Command {
	var portalAlias string
	var storeID int64
	var lowOnly bool

	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "List inventory levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(cmd, portalAlias, storeID, lowOnly)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")
	cmd.Flags().Int64Var(&storeID, "store", 0, "Scope to a store ID (admin only; ignored server-side for managers)")
	cmd.Flags().BoolVar(&lowOnly, "low", false, "Only show items at or below their reorder level")

	return cmd
}

func runInventory(cmd *cobra.Command, portalAlias string, storeID int64, lowOnly bool) error {
	_, apiClient, err := requireSession("inventory", portalAlias)
	if err != nil {
		return err
	}

	items, err := apiClient.ListInventory(cmd.Context(), client.ListOptions{StoreID: storeID})
	if err != nil {
		return err
	}

	if lowOnly {
		filtered := items[:0]
		for _, item := range items {
			if item.Quantity <= item.ReorderLevel {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if len(items) == 0 {
		fmt.Println("No inventory found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tSTORE\tQTY\tREORDER AT\tUPDATED")
	fmt.Fprintln(w, "───────\t─────\t───\t──────────\t───────")

	for _, item := range items {
		marker := ""
		if item.Quantity <= item.ReorderLevel {
			marker = " ⚠"
		}
		fmt.Fprintf(w, "%s\t%s\t%d%s\t%d\t%s\n",
			item.ProductName,
			item.StoreName,
			item.Quantity,
			marker,
			item.ReorderLevel,
			item.UpdatedAt,
		)
	}

	w.Flush()

	return nil
}
