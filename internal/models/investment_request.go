package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusEscalated = "ESCALATED"
)

type InvestmentRequest struct {
	gorm.Model

	// Immutable after creation.
	Title       string          `gorm:"not null"`
	Description string
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	UserID      uint            `gorm:"not null;index"`

	// Moderation fields, written atomically on every transition.
	Status        string     `gorm:"not null;default:'PENDING';index"`
	ModeratedAt   *time.Time
	ModeratorID   *uint
	ModeratorName string

	// Relationships
	Owner     User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Moderator *User `gorm:"foreignKey:ModeratorID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

// Terminal reports whether the request is in a state that admits no
// further transitions.
func (r *InvestmentRequest) Terminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
