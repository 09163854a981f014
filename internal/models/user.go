package models

import "gorm.io/gorm"

const (
	RoleRegular = "ROLE_REGULAR"
	RoleManager = "ROLE_MANAGER"
	RoleAdmin   = "ROLE_ADMIN"
)

// ValidRole reports whether name is one of the three known roles.
func ValidRole(name string) bool {
	return name == RoleRegular || name == RoleManager || name == RoleAdmin
}

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	Designation  string
	PhoneNumber  string
	Role         string `gorm:"not null;default:'ROLE_REGULAR'"`

	// A manager link is meaningful only while Role is ROLE_REGULAR and
	// the referenced user still holds ROLE_MANAGER.
	ManagerID *uint `gorm:"index"`

	// Relationships
	Manager      *User  `gorm:"foreignKey:ManagerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Subordinates []User `gorm:"foreignKey:ManagerID"`

	InvestmentRequests []InvestmentRequest `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// HasManager reports whether the user has a live manager link. A link
// pointing at a user who no longer holds ROLE_MANAGER is treated as
// absent.
func (u *User) HasManager() bool {
	return u.ManagerID != nil && u.Manager != nil && u.Manager.Role == RoleManager
}

// DisplayName is the denormalized name recorded on moderated requests.
func (u *User) DisplayName() string {
	return u.Username
}
