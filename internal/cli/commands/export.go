package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/storekeep-dev/storekeep/internal/cache"
	"github.com/storekeep-dev/storekeep/internal/cli/client"
)

// exportProfile selects which columns an export contains, loaded from a
// YAML file passed via --profile
type exportProfile struct {
	Columns []string `yaml:"columns"`
}

func loadProfile(path string) (*exportProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile exportProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}
	if len(profile.Columns) == 0 {
		return nil, fmt.Errorf("profile file %s lists no columns", path)
	}

	return &profile, nil
}

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var portalAlias, outPath, profilePath string
	var storeID int64
	var offline bool

	cmd := &cobra.Command{
		Use:       "export <products|inventory|suppliers>",
		Short:     "Export a resource as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"products", "inventory", "suppliers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], portalAlias, outPath, profilePath, storeID, offline)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file ('-' for stdout, default <resource>-<id>.csv)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML file selecting which columns to export")
	cmd.Flags().Int64Var(&storeID, "store", 0, "Scope to a store ID (admin only; ignored server-side for managers)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Export from the local cache instead of the portal (run 'storekeep sync' first)")

	return cmd
}

func runExport(cmd *cobra.Command, resource, portalAlias, outPath, profilePath string, storeID int64, offline bool) error {
	var header []string
	var rows [][]string
	var err error

	if offline {
		header, rows, err = cachedTable(resource)
	} else {
		header, rows, err = liveTable(cmd.Context(), resource, portalAlias, storeID)
	}
	if err != nil {
		return err
	}

	if profilePath != "" {
		profile, err := loadProfile(profilePath)
		if err != nil {
			return err
		}
		header, rows, err = selectColumns(header, rows, profile.Columns)
		if err != nil {
			return err
		}
	}

	out := os.Stdout
	if outPath != "-" {
		if outPath == "" {
			outPath = fmt.Sprintf("%s-%s.csv", resource, strings.ToLower(ulid.Make().String()))
		}
		out, err = os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if outPath != "-" {
		fmt.Printf("✓ Exported %d rows to %s\n", len(rows), outPath)
	}

	return nil
}

// liveTable fetches the resource from the portal and flattens it to rows
func liveTable(ctx context.Context, resource, portalAlias string, storeID int64) ([]string, [][]string, error) {
	_, apiClient, err := requireSession("export "+resource, portalAlias)
	if err != nil {
		return nil, nil, err
	}

	opts := client.ListOptions{StoreID: storeID}

	switch resource {
	case "products":
		products, err := apiClient.ListProducts(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(products))
		for _, p := range products {
			rows = append(rows, []string{p.SKU, p.Name, p.Category, strconv.FormatFloat(p.Price, 'f', 2, 64)})
		}
		return productHeader, rows, nil

	case "inventory":
		items, err := apiClient.ListInventory(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{
				item.ProductName,
				item.StoreName,
				strconv.Itoa(item.Quantity),
				strconv.Itoa(item.ReorderLevel),
				item.UpdatedAt,
			})
		}
		return inventoryHeader, rows, nil

	case "suppliers":
		suppliers, err := apiClient.ListSuppliers(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(suppliers))
		for _, s := range suppliers {
			rows = append(rows, []string{s.Name, s.ContactName, s.Email, s.Phone})
		}
		return supplierHeader, rows, nil
	}

	return nil, nil, fmt.Errorf("unknown resource %q", resource)
}

// cachedTable reads the resource from the local cache
func cachedTable(resource string) ([]string, [][]string, error) {
	cachePath, err := resolveCachePath()
	if err != nil {
		return nil, nil, err
	}

	db, err := cache.Open(cachePath)
	if err != nil {
		return nil, nil, err
	}

	lastSync, err := db.LastSync(resource)
	if err != nil {
		return nil, nil, err
	}
	if lastSync == nil {
		return nil, nil, fmt.Errorf("no cached %s found. Run 'storekeep sync' first", resource)
	}

	switch resource {
	case "products":
		cached, err := db.Products()
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(cached))
		for _, p := range cached {
			rows = append(rows, []string{p.SKU, p.Name, p.Category, strconv.FormatFloat(p.Price, 'f', 2, 64)})
		}
		return productHeader, rows, nil

	case "inventory":
		cached, err := db.Inventory()
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(cached))
		for _, item := range cached {
			rows = append(rows, []string{
				item.ProductName,
				item.StoreName,
				strconv.Itoa(item.Quantity),
				strconv.Itoa(item.ReorderLevel),
				item.UpdatedAt,
			})
		}
		return inventoryHeader, rows, nil

	case "suppliers":
		cached, err := db.Suppliers()
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(cached))
		for _, s := range cached {
			rows = append(rows, []string{s.Name, s.ContactName, s.Email, s.Phone})
		}
		return supplierHeader, rows, nil
	}

	return nil, nil, fmt.Errorf("unknown resource %q", resource)
}

var (
	productHeader   = []string{"sku", "name", "category", "price"}
	inventoryHeader = []string{"product", "store", "quantity", "reorder_level", "updated_at"}
	supplierHeader  = []string{"name", "contact", "email", "phone"}
)

// selectColumns narrows a table to the named columns, in profile order
func selectColumns(header []string, rows [][]string, want []string) ([]string, [][]string, error) {
	indexes := make([]int, 0, len(want))
	for _, name := range want {
		found := -1
		for i, col := range header {
			if col == name {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, nil, fmt.Errorf("unknown column %q (available: %s)", name, strings.Join(header, ", "))
		}
		indexes = append(indexes, found)
	}

	outRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		outRow := make([]string, len(indexes))
		for i, idx := range indexes {
			outRow[i] = row[idx]
		}
		outRows = append(outRows, outRow)
	}

	return want, outRows, nil
}
