// db/repo_assignment.go
package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/texcare/texcare360-backend/models"
)

var (
	ErrTechnicianBusy      = errors.New("technician already busy")
	ErrTechnicianAvailable = errors.New("technician already available")
)

// Assignment is what an assign call hands back: the technician after the
// status flip plus the log opened for this repair cycle.
type Assignment struct {
	Technician *models.Technician     `json:"technician"`
	Log        *models.MaintenanceLog `json:"log"`
}

// 指派：原子操作 = 占用技师 → 机器置 Unhealthy → 新建未完成日志
func (r *Repo) AssignTechnician(ctx context.Context, machineID, techID uint) (*Assignment, error) {
	var out Assignment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Machine
		if err := tx.First(&m, "id = ?", machineID).Error; err != nil {
			return notFound(err)
		}
		var t models.Technician
		if err := tx.First(&t, "id = ?", techID).Error; err != nil {
			return notFound(err)
		}
		if t.Status == models.TechBusy {
			return ErrTechnicianBusy
		}
		return r.assignLocked(tx, &out, &m, &t)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AutoAssignTechnician picks the first Available technician whose skill
// matches skillRequired case-insensitively, in id order. No match is not an
// error: the caller gets (nil, nil) and falls back to manual assignment.
func (r *Repo) AutoAssignTechnician(ctx context.Context, machineID uint, skillRequired string) (*Assignment, error) {
	var out *Assignment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Machine
		if err := tx.First(&m, "id = ?", machineID).Error; err != nil {
			return notFound(err)
		}
		var t models.Technician
		err := tx.
			Where("status = ? AND LOWER(skill) = ?", models.TechAvailable, strings.ToLower(skillRequired)).
			Order("id ASC").
			First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out = &Assignment{}
		return r.assignLocked(tx, out, &m, &t)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// assignLocked flips both statuses and opens the log. The conditional
// UPDATE (WHERE status = 'Available') is the race guard: two concurrent
// assigns for the same technician cannot both pass it.
func (r *Repo) assignLocked(tx *gorm.DB, out *Assignment, m *models.Machine, t *models.Technician) error {
	res := tx.Model(&models.Technician{}).
		Where("id = ? AND status = ?", t.ID, models.TechAvailable).
		Update("status", models.TechBusy)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTechnicianBusy
	}
	if err := tx.Model(&models.Machine{}).
		Where("id = ?", m.ID).
		Update("status", models.MachineUnhealthy).Error; err != nil {
		return err
	}
	l := &models.MaintenanceLog{
		MachineID: m.ID,
		TechID:    t.ID,
		Skill:     t.Skill,
		DateTime:  time.Now().UTC(),
	}
	if err := tx.Create(l).Error; err != nil {
		return err
	}
	t.Status = models.TechBusy
	out.Technician = t
	out.Log = l
	return nil
}

// 撤销指派（旁路，不动日志；正常路径走 CompleteLog）
func (r *Repo) UnassignTechnician(ctx context.Context, machineID, techID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Technician
		if err := tx.First(&t, "id = ?", techID).Error; err != nil {
			return notFound(err)
		}
		if t.Status == models.TechAvailable {
			return ErrTechnicianAvailable
		}
		res := tx.Model(&models.Technician{}).
			Where("id = ? AND status = ?", techID, models.TechBusy).
			Update("status", models.TechAvailable)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTechnicianAvailable
		}
		return tx.Model(&models.Machine{}).
			Where("id = ?", machineID).
			Update("status", models.MachineHealthy).Error
	})
}
