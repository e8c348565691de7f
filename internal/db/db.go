package db

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"clawdex/internal/models"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=clawdex port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Platform{},
		&models.Upvote{},
		&models.Bookmark{},
		&models.Comment{},
		&models.Claim{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	promoteAdmin()
}

// promoteAdmin grants the admin role to the account named by ADMIN_EMAIL,
// so moderation works without touching the database by hand.
func promoteAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return
	}

	result := DB.Model(&models.User{}).
		Where("email = ? AND role <> ?", email, "admin").
		Update("role", "admin")
	if result.Error != nil {
		log.Printf("Failed to promote admin %s: %v", email, result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Promoted %s to admin", email)
	}
}
