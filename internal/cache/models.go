package cache

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and an auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// CachedProduct is one catalog row as last seen on the portal
type CachedProduct struct {
	BaseModel
	ProductID int64   `json:"product_id" gorm:"index;not null"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name" gorm:"not null"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
}

// CachedInventoryItem is one stock row as last seen on the portal
type CachedInventoryItem struct {
	BaseModel
	ItemID       int64  `json:"item_id" gorm:"index;not null"`
	ProductID    int64  `json:"product_id" gorm:"index"`
	ProductName  string `json:"product_name"`
	StoreID      int64  `json:"store_id" gorm:"index"`
	StoreName    string `json:"store_name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
	UpdatedAt    string `json:"updated_at"`
}

// CachedSupplier is one supplier row as last seen on the portal
type CachedSupplier struct {
	BaseModel
	SupplierID  int64  `json:"supplier_id" gorm:"index;not null"`
	Name        string `json:"name" gorm:"not null"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// SyncRun records one completed snapshot of a resource
type SyncRun struct {
	BaseModel
	Resource    string    `json:"resource" gorm:"index;not null"`
	RowCount    int       `json:"row_count"`
	CompletedAt time.Time `json:"completed_at"`
}
