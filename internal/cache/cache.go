// Package cache keeps a local SQLite snapshot of the portal's catalog so
// exports can run offline. Each sync replaces the previous snapshot whole;
// the cache is a copy of server data, never a source of truth.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const cacheFileName = "cache.sqlite"

// Cache wraps the local snapshot database
type Cache struct {
	db *gorm.DB
}

// DefaultPath returns the cache database location under the user cache dir
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "storekeep", cacheFileName), nil
}

// Open opens (creating if needed) the cache database at path
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.AutoMigrate(
		&CachedProduct{},
		&CachedInventoryItem{},
		&CachedSupplier{},
		&SyncRun{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	return &Cache{db: db}, nil
}

// ReplaceProducts swaps the cached product snapshot for a new one
func (c *Cache) ReplaceProducts(rows []CachedProduct) error {
	return c.replace("products", &CachedProduct{}, len(rows), func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// ReplaceInventory swaps the cached inventory snapshot for a new one
func (c *Cache) ReplaceInventory(rows []CachedInventoryItem) error {
	return c.replace("inventory", &CachedInventoryItem{}, len(rows), func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// ReplaceSuppliers swaps the cached supplier snapshot for a new one
func (c *Cache) ReplaceSuppliers(rows []CachedSupplier) error {
	return c.replace("suppliers", &CachedSupplier{}, len(rows), func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// replace deletes the prior snapshot for a resource and inserts the new one
// in a single transaction, then records the sync run
func (c *Cache) replace(resource string, model any, rowCount int, insert func(tx *gorm.DB) error) error {
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
		if err := insert(tx); err != nil {
			return err
		}
		run := SyncRun{
			Resource:    resource,
			RowCount:    rowCount,
			CompletedAt: time.Now().UTC(),
		}
		return tx.Create(&run).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace cached %s: %w", resource, err)
	}
	return nil
}

// Products returns the cached product snapshot
func (c *Cache) Products() ([]CachedProduct, error) {
	var rows []CachedProduct
	if err := c.db.Order("product_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read cached products: %w", err)
	}
	return rows, nil
}

// Inventory returns the cached inventory snapshot
func (c *Cache) Inventory() ([]CachedInventoryItem, error) {
	var rows []CachedInventoryItem
	if err := c.db.Order("store_id, product_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read cached inventory: %w", err)
	}
	return rows, nil
}

// Suppliers returns the cached supplier snapshot
func (c *Cache) Suppliers() ([]CachedSupplier, error) {
	var rows []CachedSupplier
	if err := c.db.Order("supplier_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read cached suppliers: %w", err)
	}
	return rows, nil
}

// LastSync returns the most recent sync run for a resource, or nil if the
// resource has never been synced
func (c *Cache) LastSync(resource string) (*SyncRun, error) {
	var run SyncRun
	err := c.db.Where("resource = ?", resource).Order("completed_at desc").First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sync history: %w", err)
	}
	return &run, nil
}
