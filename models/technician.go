// models/technician.go
package models

import "time"

const TechnicianTable = "technicians"

// Technician availability states.
const (
	TechAvailable = "Available"
	TechBusy      = "Busy"
)

type Technician struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Skill     string    `gorm:"size:120;not null;index" json:"skill"`
	Status    string    `gorm:"size:20;not null;default:'Available'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Technician) TableName() string { return TechnicianTable }
