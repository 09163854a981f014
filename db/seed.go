package db

import (
	"errors"
	"log"

	"github.com/investflow-dev/investflow/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminAccount creates the bootstrap admin user if it does not
// exist yet. Without it nobody can edit roles, so a fresh database
// would be unusable.
func SeedAdminAccount(password string) error {
	var existing models.User

	err := DB.Where("username = ?", "admin").First(&existing).Error

	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: string(passwordHash),
		FirstName:    "Admin",
		LastName:     "User",
		Designation:  "System Administrator",
		Role:         models.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded bootstrap admin account")

	return nil
}
