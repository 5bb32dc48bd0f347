// models/machine.go
package models

import "time"

const MachineTable = "machines"

// Machine health states.
const (
	MachineHealthy   = "Healthy"
	MachineUnhealthy = "Unhealthy"
)

type Machine struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Status        string    `gorm:"size:20;not null;default:'Healthy'" json:"status"`
	SkillRequired string    `gorm:"size:120" json:"skillRequired,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Machine) TableName() string { return MachineTable }
