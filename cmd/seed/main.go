// Command main runs the database seeder for Newsdesk.
package main

import (
	"flag"
	"log"

	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numSubmissions := flag.Int("submissions", 40, "Number of submissions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d submissions, clean=%v\n", *numUsers, *numSubmissions, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)
	if err := s.Run(seed.Options{
		NumUsers:       *numUsers,
		NumSubmissions: *numSubmissions,
		ShouldClean:    *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
