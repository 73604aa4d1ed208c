package cache

import (
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	return c
}

func TestReplaceProductsAndReadBack(t *testing.T) {
	c := openTestCache(t)

	rows := []CachedProduct{
		{ProductID: 2, SKU: "SK-2", Name: "Filter Paper", Category: "supplies", Price: 3.25},
		{ProductID: 1, SKU: "SK-1", Name: "Espresso Beans", Category: "coffee", Price: 12.5},
	}
	if err := c.ReplaceProducts(rows); err != nil {
		t.Fatalf("ReplaceProducts failed: %v", err)
	}

	got, err := c.Products()
	if err != nil {
		t.Fatalf("Products failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	// Ordered by product ID
	if got[0].ProductID != 1 || got[1].ProductID != 2 {
		t.Errorf("expected products ordered by ID, got %v, %v", got[0].ProductID, got[1].ProductID)
	}
	if got[0].ID == "" {
		t.Error("expected generated ULID primary key")
	}
}

func TestReplaceIsWholesale(t *testing.T) {
	c := openTestCache(t)

	first := []CachedProduct{
		{ProductID: 1, Name: "Espresso Beans"},
		{ProductID: 2, Name: "Filter Paper"},
	}
	if err := c.ReplaceProducts(first); err != nil {
		t.Fatalf("ReplaceProducts failed: %v", err)
	}

	second := []CachedProduct{
		{ProductID: 3, Name: "Travel Mug"},
	}
	if err := c.ReplaceProducts(second); err != nil {
		t.Fatalf("ReplaceProducts failed: %v", err)
	}

	got, err := c.Products()
	if err != nil {
		t.Fatalf("Products failed: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 3 {
		t.Errorf("expected snapshot to be replaced whole, got %+v", got)
	}
}

func TestReplaceWithEmptySnapshot(t *testing.T) {
	c := openTestCache(t)

	if err := c.ReplaceSuppliers([]CachedSupplier{{SupplierID: 1, Name: "Acme Roasters"}}); err != nil {
		t.Fatalf("ReplaceSuppliers failed: %v", err)
	}
	if err := c.ReplaceSuppliers(nil); err != nil {
		t.Fatalf("ReplaceSuppliers with empty snapshot failed: %v", err)
	}

	got, err := c.Suppliers()
	if err != nil {
		t.Fatalf("Suppliers failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty snapshot, got %+v", got)
	}
}

func TestLastSync(t *testing.T) {
	c := openTestCache(t)

	run, err := c.LastSync("products")
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if run != nil {
		t.Errorf("expected no sync history, got %+v", run)
	}

	if err := c.ReplaceProducts([]CachedProduct{{ProductID: 1, Name: "Espresso Beans"}}); err != nil {
		t.Fatalf("ReplaceProducts failed: %v", err)
	}

	run, err = c.LastSync("products")
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if run == nil {
		t.Fatal("expected a sync run after ReplaceProducts")
	}
	if run.Resource != "products" || run.RowCount != 1 {
		t.Errorf("unexpected sync run: %+v", run)
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	c := openTestCache(t)

	rows := []CachedInventoryItem{
		{ItemID: 1, ProductID: 1, ProductName: "Espresso Beans", StoreID: 1, StoreName: "Downtown", Quantity: 40, ReorderLevel: 10},
	}
	if err := c.ReplaceInventory(rows); err != nil {
		t.Fatalf("ReplaceInventory failed: %v", err)
	}

	got, err := c.Inventory()
	if err != nil {
		t.Fatalf("Inventory failed: %v", err)
	}
	if len(got) != 1 || got[0].StoreName != "Downtown" || got[0].Quantity != 40 {
		t.Errorf("unexpected inventory: %+v", got)
	}
}
