// models/maintenance_log.go
package models

import "time"

const MaintenanceLogTable = "maintenance_logs"

// MaintenanceLog links one machine and one technician for one repair cycle.
// At most one open (completed = false) log may exist per machine and per
// technician; Migrate enforces that with partial unique indexes.
type MaintenanceLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MachineID uint      `gorm:"index;not null" json:"machineId"`
	TechID    uint      `gorm:"index;not null" json:"techId"`
	Skill     string    `gorm:"size:120" json:"skill"`
	DateTime  time.Time `gorm:"index;not null" json:"dateTime"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	PartsUsed *string   `gorm:"size:255" json:"partsUsed,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (MaintenanceLog) TableName() string { return MaintenanceLogTable }

// LogView is the joined row returned by the list endpoint: machine and
// technician resolved to their names.
type LogView struct {
	ID         uint      `json:"id"`
	Machine    string    `json:"machine"`
	Technician string    `json:"technician"`
	MachineID  uint      `json:"machineId"`
	TechID     uint      `json:"techId"`
	Skill      string    `json:"skill"`
	DateTime   time.Time `json:"dateTime"`
	Completed  bool      `json:"completed"`
	PartsUsed  *string   `json:"partsUsed"`
}
