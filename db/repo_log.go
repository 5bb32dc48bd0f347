// db/repo_log.go
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/texcare/texcare360-backend/models"
)

var ErrLogCompleted = errors.New("log already completed")

// InsufficientStockError is a user-correctable validation failure, not a
// system fault; its message names the technician, the part and the shortfall.
type InsufficientStockError struct {
	Technician string
	Part       string
	Requested  int
	Available  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("cannot complete task for %s: %s has only %d in stock, %d requested",
		e.Technician, e.Part, e.Available, e.Requested)
}

func (r *Repo) ListLogs(ctx context.Context) ([]models.LogView, error) {
	var rows []models.LogView
	err := r.DB.WithContext(ctx).
		Table(models.MaintenanceLogTable+" AS l").
		Select(`l.id, m.name AS machine, t.name AS technician,
			l.machine_id, l.tech_id, l.skill, l.date_time, l.completed, l.parts_used`).
		Joins(fmt.Sprintf("JOIN %s m ON l.machine_id = m.id", models.MachineTable)).
		Joins(fmt.Sprintf("JOIN %s t ON l.tech_id = t.id", models.TechnicianTable)).
		Order("l.date_time DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repo) FindLogByID(ctx context.Context, id uint) (*models.MaintenanceLog, error) {
	var l models.MaintenanceLog
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *Repo) CreateLog(ctx context.Context, l *models.MaintenanceLog) error {
	if l.DateTime.IsZero() {
		l.DateTime = time.Now().UTC()
	}
	return r.DB.WithContext(ctx).Create(l).Error
}

// CompletionResult reports what a completion did, including the low-stock
// advisory the caller may want to surface.
type CompletionResult struct {
	Log          *models.MaintenanceLog `json:"log"`
	PartUsed     string                 `json:"partUsed,omitempty"`
	RemainingQty int                    `json:"remainingQty,omitempty"`
	LowStock     bool                   `json:"lowStock"`
}

// 完成：原子操作 = 扣库存(可选) → 记流水 → 关日志 → 机器/技师复位
// 全部在一个事务里，库存扣减后任何一步失败都会整体回滚。
func (r *Repo) CompleteLog(ctx context.Context, logID uint, partName string, qty int, actor string) (*CompletionResult, error) {
	var out CompletionResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.MaintenanceLog
		if err := tx.First(&l, "id = ?", logID).Error; err != nil {
			return notFound(err)
		}
		if l.Completed {
			return ErrLogCompleted
		}
		var t models.Technician
		if err := tx.First(&t, "id = ?", l.TechID).Error; err != nil {
			return notFound(err)
		}

		var partsUsed *string
		if partName != "" && qty > 0 {
			var item models.InventoryItem
			if err := tx.Where("name = ?", partName).First(&item).Error; err != nil {
				return notFound(err)
			}
			if qty > item.Quantity {
				return &InsufficientStockError{
					Technician: t.Name,
					Part:       item.Name,
					Requested:  qty,
					Available:  item.Quantity,
				}
			}
			newQty := item.Quantity - qty
			if newQty < 0 {
				newQty = 0
			}
			res := tx.Model(&models.InventoryItem{}).
				Where("id = ? AND quantity >= ?", item.ID, qty).
				Update("quantity", newQty)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// 并发下库存被人抢先用掉
				return &InsufficientStockError{
					Technician: t.Name,
					Part:       item.Name,
					Requested:  qty,
					Available:  item.Quantity,
				}
			}
			if err := tx.Create(&models.StockHistory{
				Action:    models.StockUsed,
				Item:      item.Name,
				QtyChange: -qty,
				User:      actor,
			}).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("%dx %s", qty, item.Name)
			partsUsed = &desc
			out.PartUsed = item.Name
			out.RemainingQty = newQty
			out.LowStock = newQty <= LowStockThreshold
		}

		if err := tx.Model(&models.MaintenanceLog{}).
			Where("id = ?", l.ID).
			Updates(map[string]interface{}{"completed": true, "parts_used": partsUsed}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Machine{}).
			Where("id = ?", l.MachineID).
			Update("status", models.MachineHealthy).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Technician{}).
			Where("id = ?", l.TechID).
			Update("status", models.TechAvailable).Error; err != nil {
			return err
		}
		l.Completed = true
		l.PartsUsed = partsUsed
		out.Log = &l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLog is an administrative override. Deleting an open log also resets
// the machine and technician it holds, so the registry invariants survive.
func (r *Repo) DeleteLog(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.MaintenanceLog
		if err := tx.First(&l, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if !l.Completed {
			if err := tx.Model(&models.Machine{}).
				Where("id = ?", l.MachineID).
				Update("status", models.MachineHealthy).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Technician{}).
				Where("id = ?", l.TechID).
				Update("status", models.TechAvailable).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.MaintenanceLog{}, "id = ?", id).Error
	})
}
