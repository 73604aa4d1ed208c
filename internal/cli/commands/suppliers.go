package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
)

// NewSuppliersCmd creates the suppliers command
func NewSuppliersCmd() *cobra.Command {
	var portalAlias string
	var storeID int64

	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "List suppliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuppliers(cmd, portalAlias, storeID)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")
	cmd.Flags().Int64Var(&storeID, "store", 0, "Scope to a store ID (admin only; ignored server-side for managers)")

	return cmd
}

func runSuppliers(cmd *cobra.Command, portalAlias string, storeID int64) error {
	_, apiClient, err := requireSession("suppliers", portalAlias)
	if err != nil {
		return err
	}

	suppliers, err := apiClient.ListSuppliers(cmd.Context(), client.ListOptions{StoreID: storeID})
	if err != nil {
		return err
	}

	if len(suppliers) == 0 {
		fmt.Println("No suppliers found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCONTACT\tEMAIL\tPHONE")
	fmt.Fprintln(w, "────\t───────\t─────\t─────")

	for _, supplier := range suppliers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			supplier.Name,
			supplier.ContactName,
			supplier.Email,
			supplier.Phone,
		)
	}

	w.Flush()

	return nil
}
