package database

import (
	"log"
	"time"

	"worklines-api/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the SQLite database at path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
func InitDB(path string) {
	var err error

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
}

// Migrate creates or updates the schema for every collection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.WorkLine{},
		&models.Project{},
		&models.Task{},
		&models.Risk{},
		&models.MonthlyReview{},
	)
}

// Seed inserts the default work line and the two built-in admin accounts
// when the corresponding tables are empty. A missing or wiped database
// therefore always comes back in a usable state.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		for _, u := range defaultUsers() {
			if err := db.Create(&u).Error; err != nil {
				return err
			}
		}
	}

	var lineCount int64
	if err := db.Model(&models.WorkLine{}).Count(&lineCount).Error; err != nil {
		return err
	}
	if lineCount == 0 {
		line := models.WorkLine{
			ID:          "line-1",
			Name:        "Línea General",
			Description: "Línea por defecto",
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := db.Create(&line).Error; err != nil {
			return err
		}
	}
	return nil
}

func defaultUsers() []models.User {
	return []models.User{
		{ID: "admin", Name: "Admin", Email: "admin@iustime.com", Password: hashPassword("admin"), Role: models.RoleAdmin},
		{ID: "ana", Name: "Ana Tanco", Email: "ana.tanco@solfico.es", Password: hashPassword("An@t4505"), Role: models.RoleAdmin},
	}
}

func hashPassword(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}
	return string(hash)
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
