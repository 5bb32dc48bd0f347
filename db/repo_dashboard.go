// db/repo_dashboard.go
package db

import (
	"context"

	"github.com/texcare/texcare360-backend/models"
)

// DashboardSummary aggregates the counters the dashboard charts plot.
type DashboardSummary struct {
	Machines struct {
		Healthy   int64 `json:"healthy"`
		Unhealthy int64 `json:"unhealthy"`
	} `json:"machines"`
	Technicians struct {
		Available int64 `json:"available"`
		Busy      int64 `json:"busy"`
	} `json:"technicians"`
	Logs struct {
		Open      int64 `json:"open"`
		Completed int64 `json:"completed"`
	} `json:"logs"`
	LowStock []models.InventoryItem `json:"lowStock"`
}

func (r *Repo) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var s DashboardSummary
	counts := []struct {
		model interface{}
		where []interface{}
		dst   *int64
	}{
		{&models.Machine{}, []interface{}{"status = ?", models.MachineHealthy}, &s.Machines.Healthy},
		{&models.Machine{}, []interface{}{"status = ?", models.MachineUnhealthy}, &s.Machines.Unhealthy},
		{&models.Technician{}, []interface{}{"status = ?", models.TechAvailable}, &s.Technicians.Available},
		{&models.Technician{}, []interface{}{"status = ?", models.TechBusy}, &s.Technicians.Busy},
		{&models.MaintenanceLog{}, []interface{}{"NOT completed"}, &s.Logs.Open},
		{&models.MaintenanceLog{}, []interface{}{"completed"}, &s.Logs.Completed},
	}
	for _, c := range counts {
		q := r.DB.WithContext(ctx).Model(c.model)
		if len(c.where) == 1 {
			q = q.Where(c.where[0])
		} else {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	low, err := r.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	s.LowStock = low
	return &s, nil
}
