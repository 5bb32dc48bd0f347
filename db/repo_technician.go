// db/repo_technician.go
package db

import (
	"context"
	"errors"

	"github.com/texcare/texcare360-backend/models"
)

// 现行为：只要有日志引用（包括已完成的）就禁止删除
var ErrTechnicianHasLogs = errors.New("cannot delete technician with existing logs")

func (r *Repo) CreateTechnician(ctx context.Context, t *models.Technician) error {
	if t.Status == "" {
		t.Status = models.TechAvailable
	}
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *Repo) FindTechnicianByID(ctx context.Context, id uint) (*models.Technician, error) {
	var t models.Technician
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *Repo) FindTechnicianByName(ctx context.Context, name string) (*models.Technician, error) {
	var t models.Technician
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *Repo) ListTechnicians(ctx context.Context) ([]models.Technician, error) {
	var ts []models.Technician
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&ts).Error
	return ts, err
}

func (r *Repo) UpdateTechnicianStatus(ctx context.Context, id uint, status string) (*models.Technician, error) {
	res := r.DB.WithContext(ctx).Model(&models.Technician{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindTechnicianByID(ctx, id)
}

func (r *Repo) DeleteTechnician(ctx context.Context, id uint) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.MaintenanceLog{}).
		Where("tech_id = ?", id).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrTechnicianHasLogs
	}
	res := r.DB.WithContext(ctx).Delete(&models.Technician{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
