package db

import (
	"log"
	"os"
	"path/filepath"

	"gomart/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDatabase(dbPath string) {
	var err error

	// Ensure the directory exists (create if it doesn't)
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal("Failed to create database directory:", err)
		}
	}

	// _busy_timeout makes concurrent writers wait for the lock instead of
	// failing with SQLITE_BUSY, which matters for simultaneous orders.
	DB, err = gorm.Open(sqlite.Open(dbPath+"?_busy_timeout=5000"), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connected successfully at", dbPath)

	// Auto migrate the schema
	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.Order{},
		&models.Comment{}, &models.Admin{},
	)
}

// EnsureAdmin seeds the admin account on first start. The stored password is a
// bcrypt hash; an existing admin record is left untouched.
func EnsureAdmin(gdb *gorm.DB, name, login, password string) error {
	var admin models.Admin
	err := gdb.Where("login = ?", login).First(&admin).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return gdb.Create(&models.Admin{
		Name:     name,
		Login:    login,
		Password: string(hash),
	}).Error
}

func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}
