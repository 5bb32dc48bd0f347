package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/texcare/texcare360-backend/models"
)

// newTestRepo opens a per-test in-memory sqlite database and runs the full
// migration, partial indexes included.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	return NewRepo(gdb)
}

func seedMachine(t *testing.T, r *Repo, name, status, skill string) *models.Machine {
	t.Helper()
	m := &models.Machine{Name: name, Status: status, SkillRequired: skill}
	require.NoError(t, r.DB.Create(m).Error)
	return m
}

func seedTechnician(t *testing.T, r *Repo, name, skill, status string) *models.Technician {
	t.Helper()
	tech := &models.Technician{Name: name, Skill: skill, Status: status}
	require.NoError(t, r.DB.Create(tech).Error)
	return tech
}

func seedItem(t *testing.T, r *Repo, name string, qty int) *models.InventoryItem {
	t.Helper()
	it := &models.InventoryItem{Name: name, Category: "Mechanical Parts", Quantity: qty}
	require.NoError(t, r.DB.Create(it).Error)
	return it
}
