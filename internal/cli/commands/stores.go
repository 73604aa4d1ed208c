package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStoresCmd creates the stores command
func NewStoresCmd() *cobra.Command {
	var portalAlias, city string

	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List store locations",
		Long:  "List store locations. This is the store locator and works without logging in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStores(cmd, portalAlias, city)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")
	cmd.Flags().StringVar(&city, "city", "", "Only show stores in this city")

	return cmd
}

func runStores(cmd *cobra.Command, portalAlias, city string) error {
	// Store locator is public, no session required
	_, apiClient, err := openSession(portalAlias)
	if err != nil {
		return err
	}

	stores, err := apiClient.ListStores(cmd.Context())
	if err != nil {
		return err
	}

	if city != "" {
		filtered := stores[:0]
		for _, store := range stores {
			if strings.EqualFold(store.City, city) {
				filtered = append(filtered, store)
			}
		}
		stores = filtered
	}

	if len(stores) == 0 {
		fmt.Println("No stores found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS\tCITY\tPHONE")
	fmt.Fprintln(w, "──\t────\t───────\t────\t─────")

	for _, store := range stores {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			store.ID,
			store.Name,
			store.Address,
			store.City,
			store.Phone,
		)
	}

	w.Flush()

	return nil
}
