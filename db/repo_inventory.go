// db/repo_inventory.go
package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/texcare/texcare360-backend/models"
)

// LowStockThreshold is the quantity at or below which a reorder advisory is
// raised.
const LowStockThreshold = 5

func (r *Repo) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *Repo) FindInventoryItemByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var it models.InventoryItem
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *Repo) FindInventoryItemByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	var it models.InventoryItem
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&it).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

// CreateInventoryItem inserts the item and its "Added" audit row together.
func (r *Repo) CreateInventoryItem(ctx context.Context, it *models.InventoryItem, actor string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(it).Error; err != nil {
			return err
		}
		return tx.Create(&models.StockHistory{
			Action:    models.StockAdded,
			Item:      it.Name,
			QtyChange: it.Quantity,
			User:      actor,
		}).Error
	})
}

// InventoryUpdate carries the optional fields of a partial update.
type InventoryUpdate struct {
	Name     *string
	Category *string
	Quantity *int
	Supplier *string
	LeadTime *int
	Expiry   *time.Time
}

// UpdateInventoryItem applies a partial update; a quantity raise appends a
// "Restocked" audit row with the positive delta.
func (r *Repo) UpdateInventoryItem(ctx context.Context, id uint, in InventoryUpdate, actor string) (*models.InventoryItem, error) {
	var out models.InventoryItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.InventoryItem
		if err := tx.First(&it, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Category != nil {
			updates["category"] = *in.Category
		}
		if in.Quantity != nil {
			updates["quantity"] = *in.Quantity
		}
		if in.Supplier != nil {
			updates["supplier"] = *in.Supplier
		}
		if in.LeadTime != nil {
			updates["lead_time"] = *in.LeadTime
		}
		if in.Expiry != nil {
			updates["expiry"] = *in.Expiry
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.Quantity != nil && *in.Quantity > it.Quantity {
			if err := tx.Create(&models.StockHistory{
				Action:    models.StockRestocked,
				Item:      it.Name,
				QtyChange: *in.Quantity - it.Quantity,
				User:      actor,
			}).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) DeleteInventoryItem(ctx context.Context, id uint, actor string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.InventoryItem
		if err := tx.First(&it, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&models.InventoryItem{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Create(&models.StockHistory{
			Action:    models.StockDeleted,
			Item:      it.Name,
			QtyChange: -it.Quantity,
			User:      actor,
		}).Error
	})
}

// Stock history

func (r *Repo) ListStockHistory(ctx context.Context) ([]models.StockHistory, error) {
	var hs []models.StockHistory
	err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&hs).Error
	return hs, err
}

func (r *Repo) CreateStockHistory(ctx context.Context, h *models.StockHistory) error {
	return r.DB.WithContext(ctx).Create(h).Error
}

func (r *Repo) DeleteStockHistory(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.StockHistory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LowStockItems lists everything at or below the reorder threshold.
func (r *Repo) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.DB.WithContext(ctx).
		Where("quantity <= ?", LowStockThreshold).
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}
