package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/storekeep-dev/storekeep/internal/cache"
	"github.com/storekeep-dev/storekeep/internal/cli/client"
	"github.com/storekeep-dev/storekeep/internal/logger"
)

// NewSyncCmd creates the sync command
func NewSyncCmd() *cobra.Command {
	var portalAlias, schedule string
	var storeID int64

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Snapshot the portal's catalog into the local cache",
		Long: `Snapshot products, inventory and suppliers into the local cache so
'storekeep export --offline' works without the portal.

With --schedule the sync keeps running in the foreground and repeats on a
cron expression:

  $ storekeep sync --schedule "@every 15m"
  $ storekeep sync --schedule "0 6 * * *"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, portalAlias, schedule, storeID)
		},
	}

	cmd.Flags().StringVar(&portalAlias, "portal", "", "Portal alias (uses selected portal if not specified)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron expression to repeat the sync in the foreground")
	cmd.Flags().Int64Var(&storeID, "store", 0, "Scope to a store ID (admin only; ignored server-side for managers)")

	return cmd
}

func runSync(cmd *cobra.Command, portalAlias, schedule string, storeID int64) error {
	_, apiClient, err := requireSession("sync", portalAlias)
	if err != nil {
		return err
	}

	cachePath, err := resolveCachePath()
	if err != nil {
		return err
	}

	db, err := cache.Open(cachePath)
	if err != nil {
		return err
	}

	if schedule == "" {
		return syncOnce(cmd.Context(), apiClient, db, storeID)
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(schedule, func() {
		if err := syncOnce(context.Background(), apiClient, db, storeID); err != nil {
			log := logger.GetLogger()
			log.Error().Err(err).Msg("scheduled sync failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid --schedule expression: %w", err)
	}

	// Run once immediately, then follow the schedule until interrupted
	if err := syncOnce(cmd.Context(), apiClient, db, storeID); err != nil {
		return err
	}

	fmt.Printf("Syncing on schedule %q. Press Ctrl+C to stop.\n", schedule)
	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx := scheduler.Stop()
	<-ctx.Done()

	return nil
}

func syncOnce(ctx context.Context, apiClient *client.Client, db *cache.Cache, storeID int64) error {
	opts := client.ListOptions{StoreID: storeID}

	products, err := apiClient.ListProducts(ctx, opts)
	if err != nil {
		return err
	}
	cachedProducts := make([]cache.CachedProduct, 0, len(products))
	for _, p := range products {
		cachedProducts = append(cachedProducts, cache.CachedProduct{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
		})
	}
	if err := db.ReplaceProducts(cachedProducts); err != nil {
		return err
	}

	items, err := apiClient.ListInventory(ctx, opts)
	if err != nil {
		return err
	}
	cachedItems := make([]cache.CachedInventoryItem, 0, len(items))
	for _, item := range items {
		cachedItems = append(cachedItems, cache.CachedInventoryItem{
			ItemID:       item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			StoreID:      item.StoreID,
			StoreName:    item.StoreName,
			Quantity:     item.Quantity,
			ReorderLevel: item.ReorderLevel,
			UpdatedAt:    item.UpdatedAt,
		})
	}
	if err := db.ReplaceInventory(cachedItems); err != nil {
		return err
	}

	suppliers, err := apiClient.ListSuppliers(ctx, opts)
	if err != nil {
		return err
	}
	cachedSuppliers := make([]cache.CachedSupplier, 0, len(suppliers))
	for _, s := range suppliers {
		cachedSuppliers = append(cachedSuppliers, cache.CachedSupplier{
			SupplierID:  s.ID,
			Name:        s.Name,
			ContactName: s.ContactName,
			Email:       s.Email,
			Phone:       s.Phone,
		})
	}
	if err := db.ReplaceSuppliers(cachedSuppliers); err != nil {
		return err
	}

	fmt.Printf("✓ Synced %d products, %d inventory rows, %d suppliers\n",
		len(products), len(items), len(suppliers))

	return nil
}
