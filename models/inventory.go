// models/inventory.go
package models

import "time"

const InventoryTable = "inventory"
const StockHistoryTable = "stock_history"

// Stock history action tags.
const (
	StockAdded     = "Added"
	StockRestocked = "Restocked"
	StockUsed      = "Used"
	StockDeleted   = "Deleted"
)

type InventoryItem struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Category  string     `gorm:"size:120" json:"category"`
	Quantity  int        `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Supplier  string     `gorm:"size:200" json:"supplier"`
	LeadTime  int        `gorm:"column:lead_time" json:"leadTime"`
	Expiry    *time.Time `json:"expiry,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (InventoryItem) TableName() string { return InventoryTable }

// StockHistory is an append-only audit row, one per inventory mutation.
type StockHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:20;not null" json:"action"`
	Item      string    `gorm:"size:200;not null;index" json:"item"`
	QtyChange int       `gorm:"column:qty_change;not null" json:"qtyChange"`
	User      string    `gorm:"size:255" json:"user"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (StockHistory) TableName() string { return StockHistoryTable }
