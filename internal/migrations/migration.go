package migrations

import (
	"log"

	"rental_manager/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds the default super admin
// and main branch on an empty database.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Branch{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderReturnAudit{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaults(db); err != nil {
		return err
	}

	log.Println("Database migrations completed")
	return nil
}

func seedDefaults(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	branch := &models.Branch{Name: "Main Branch"}
	if err := db.Create(branch).Error; err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hashed),
		Role:         string(models.SuperAdmin),
		IsActive:     true,
		GSTRate:      5.00,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Seeded default branch and super admin (username: admin)")
	return nil
}
