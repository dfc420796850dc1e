package main

import (
	"log"
	"os"

	"go-production-tracker/internal/model"
	"go-production-tracker/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Resets the super admin password from the command line, for when the
// admin locks themselves out.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find Admin
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", email, err)
	}

	// 4. Hash new password
	newPassword := os.Getenv("ADMIN_NEW_PASSWORD")
	if newPassword == "" {
		newPassword = "Admin123!"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update password and invalidate existing sessions
	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": "",
	}).Error; err != nil {
		log.Fatalf("❌ Failed to update password: %v", err)
	}

	log.Printf("✅ Password for %s reset successfully", email)
}
