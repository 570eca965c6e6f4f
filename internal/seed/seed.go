// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"newsdesk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumSubmissions int
	ShouldClean    bool
}

// Seeder populates the database with demo users and submissions.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Outcome tables go first so no submission
// briefly looks like a partial-finalize survivor to a concurrent reconcile.
func (s *Seeder) ClearAll() error {
	tables := []string{"approved_records", "rejected_records", "submissions", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// Run seeds users and submissions according to opts.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	if err := s.seedAdmin(); err != nil {
		return err
	}
	if err := s.seedUsers(opts.NumUsers); err != nil {
		return err
	}
	if err := s.seedSubmissions(opts.NumSubmissions); err != nil {
		return err
	}

	log.Printf("Seeded %d users and %d submissions", opts.NumUsers, opts.NumSubmissions)
	return nil
}

// seedAdmin creates the default admin login used in development.
func (s *Seeder) seedAdmin() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("AdminDevPass12!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:     "Admin",
		Email:    "admin@newsdesk.local",
		Password: string(hash),
		IsAdmin:  true,
	}
	return s.db.Where(models.User{Email: admin.Email}).FirstOrCreate(admin).Error
}

func (s *Seeder) seedUsers(count int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("SeededPass12!!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hash),
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
	}
	return nil
}

func (s *Seeder) seedSubmissions(count int) error {
	for i := 0; i < count; i++ {
		sub := s.BuildSubmission()
		if err := s.db.Create(sub).Error; err != nil {
			return fmt.Errorf("seeding submission %d: %w", i, err)
		}
	}
	return nil
}

// BuildSubmission constructs a realistic pending submission without
// persisting it. Roughly one in five is left incomplete so the approval
// gate has something to refuse.
func (s *Seeder) BuildSubmission() *models.Submission {
	sub := &models.Submission{
		Topic:    gofakeit.Sentence(6),
		Reporter: gofakeit.Name(),
		Content:  gofakeit.Paragraph(2, 4, 8, "\n"),
		Image:    fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID()),
		Status:   models.SubmissionStatusPending,
	}

	daysBack := s.rand.Intn(30)
	hoursBack := s.rand.Intn(24)
	sub.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if s.rand.Intn(5) == 0 {
		switch s.rand.Intn(3) {
		case 0:
			sub.Image = ""
		case 1:
			sub.Content = ""
		default:
			sub.Reporter = ""
		}
	}
	return sub
}
