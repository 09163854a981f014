package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ModerationEvent records one successful status transition. Rows are
// written in the same transaction as the transition itself.
type ModerationEvent struct {
	gorm.Model

	RequestID  uint           `gorm:"not null;index"`
	ActorID    uint           `gorm:"not null;index"`
	FromStatus string         `gorm:"not null"`
	ToStatus   string         `gorm:"not null"`
	Details    datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Request InvestmentRequest `gorm:"foreignKey:RequestID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
