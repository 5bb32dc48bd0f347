// db/repo_machine.go
package db

import (
	"context"
	"errors"

	"github.com/texcare/texcare360-backend/models"
)

var ErrMachineHasOpenLog = errors.New("machine has an open maintenance log")

func (r *Repo) CreateMachine(ctx context.Context, m *models.Machine) error {
	if m.Status == "" {
		m.Status = models.MachineHealthy
	}
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *Repo) FindMachineByID(ctx context.Context, id uint) (*models.Machine, error) {
	var m models.Machine
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *Repo) FindMachineByName(ctx context.Context, name string) (*models.Machine, error) {
	var m models.Machine
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *Repo) ListMachines(ctx context.Context) ([]models.Machine, error) {
	var ms []models.Machine
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&ms).Error
	return ms, err
}

// UpdateMachine applies a partial update; nil fields are left untouched.
func (r *Repo) UpdateMachine(ctx context.Context, id uint, name, status *string) (*models.Machine, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if status != nil {
		updates["status"] = *status
	}
	res := r.DB.WithContext(ctx).Model(&models.Machine{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindMachineByID(ctx, id)
}

func (r *Repo) DeleteMachine(ctx context.Context, id uint) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.MaintenanceLog{}).
		Where("machine_id = ? AND NOT completed", id).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrMachineHasOpenLog
	}
	res := r.DB.WithContext(ctx).Delete(&models.Machine{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
