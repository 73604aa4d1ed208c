package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cli/client"
)

// NewProductsCmd creates the products command
func NewProductsCmd() *cobra.Command {
	var portalAlias string
	var storeID int64

	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"prods"},
		Short:   "List the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(cmd, portalAlias, storeID)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")
	cmd.Flags().Int64Var(&storeID, "store", 0, "Scope to a store ID (admin only; ignored server-side for managers)")

	return cmd
}

func runProducts(cmd *cobra.Command, portalAlias string, storeID int64) error {
	_, apiClient, err := requireSession("products", portalAlias)
	if err != nil {
		return err
	}

	products, err := apiClient.ListProducts(cmd.Context(), client.ListOptions{StoreID: storeID})
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tCATEGORY\tPRICE")
	fmt.Fprintln(w, "───\t────\t────────\t─────")

	for _, product := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n",
			product.SKU,
			product.Name,
			product.Category,
			product.Price,
		)
	}

	w.Flush()

	return nil
}
