package main

import (
	"flag"
	"log"
	"time"

	"cvmentor/interview-api/internal/config"
	"cvmentor/interview-api/internal/repositories"
	"cvmentor/interview-api/internal/services"
)

// Creates a user account from the command line, useful for seeding a fresh
// environment without going through the HTTP API.
func main() {
	name := flag.String("name", "", "display name for the account")
	email := flag.String("email", "", "login email (required)")
	password := flag.String("password", "", "login password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("❌ -email and -password are required")
	}

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	tokenService := services.NewTokenService(cfg.JWT)
	authService := services.NewAuthService(repositories.NewUserRepository(db), tokenService)

	start := time.Now()
	user, token, err := authService.Register(*name, *email, *password)
	if err != nil {
		log.Fatalf("❌ Failed to create user: %v", err)
	}

	log.Printf("✅ User %s created in %s\n", user.ID, time.Since(start))
	log.Printf("🔑 Token: %s\n", token)
}
