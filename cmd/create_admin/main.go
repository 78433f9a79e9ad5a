package main

import (
	"flag"
	"fmt"
	"log"

	"mokshamaa/internal/config"
	"mokshamaa/internal/database"
	"mokshamaa/internal/domain"
	"mokshamaa/internal/util"
)

func main() {
	username := flag.String("username", "admin", "username for the dashboard account")
	password := flag.String("password", "admin", "initial password")
	email := flag.String("email", "admin@mokshamaa.org", "account email")
	fullName := flag.String("name", "System Administrator", "display name")
	flag.Parse()

	// Load configuration
	if _, err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	db := database.GetDB()

	// Check if the account already exists
	var existingUser domain.User
	if err := db.Where("username = ?", *username).First(&existingUser).Error; err == nil {
		fmt.Printf("User %q already exists!\n", *username)
		return
	}

	hashedPassword, err := util.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	adminUser := domain.User{
		Username:       *username,
		Email:          *email,
		HashedPassword: hashedPassword,
		FullName:       fullName,
		IsActive:       true,
		IsAdmin:        true,
		IsStaff:        true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("Username: %s\n", *username)
	fmt.Println("Please change the password after first login!")
}
