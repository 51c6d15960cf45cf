package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lab_manager/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables,
// runs migrations and makes sure the pre-provisioned admin account exists.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "lab")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	if err := SeedAdmin(db); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	DB = db
}

// Migrate applies the schema for all lab models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.TestCatalog{},
		&models.UserTest{},
		&models.Appointment{},
		&models.AppointmentTest{},
	)
}

// SeedAdmin inserts the ADMIN001 account once. Admin identifiers are
// provisioned here, never produced by the identifier generator.
func SeedAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("role = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(getEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	email := getEnv("ADMIN_EMAIL", "admin@lab.com")
	admin := models.User{
		UserNumber:  "ADMIN001",
		FirstName:   "Admin",
		LastName:    "User",
		Email:       &email,
		Password:    string(hash),
		Phone:       "555-0001",
		DateOfBirth: "1990-01-01",
		Gender:      "other",
		Role:        "admin",
		IsActive:    true,
	}
	return db.Create(&admin).Error
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
