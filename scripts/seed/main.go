// Command seed provisions a development database with an admin account and a
// small course catalog so the generator can be exercised end to end.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencampus/scheduler-api/internal/models"
	"github.com/opencampus/scheduler-api/pkg/config"
	"github.com/opencampus/scheduler-api/pkg/database"
)

func main() {
	var (
		adminEmail    string
		adminPassword string
		timeout       time.Duration
	)

	flag.StringVar(&adminEmail, "admin-email", "admin@campus.edu", "Admin account email")
	flag.StringVar(&adminPassword, "admin-password", "changeme123", "Admin account password")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Seed operation timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	now := time.Now().UTC()
	if _, err := db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, full_name, role, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, true, $6, $6)
ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), adminEmail, string(hash), "Administrator", models.RoleAdmin, now); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	courses := []struct {
		code    string
		name    string
		lecture int
		tut     int
		lab     int
		level   int
	}{
		{"CS101", "Introduction to Computing", 3, 1, 2, 1},
		{"MA102", "Calculus I", 3, 2, 0, 1},
		{"PH103", "Physics I", 2, 1, 2, 1},
		{"EN104", "Technical English", 2, 0, 0, 1},
		{"CS201", "Data Structures", 3, 1, 2, 2},
		{"CS202", "Digital Logic Design", 2, 1, 2, 2},
	}
	for _, course := range courses {
		if _, err := db.ExecContext(ctx, `INSERT INTO courses (id, code, name, lecture_hours, tutorial_hours, lab_hours, level, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
ON CONFLICT (code) DO NOTHING`,
			uuid.NewString(), course.code, course.name, course.lecture, course.tut, course.lab, course.level, now); err != nil {
			log.Fatalf("failed to seed course %s: %v", course.code, err)
		}
	}

	rules := []struct {
		description string
		active      bool
	}{
		{"No classes during lunch at 12:00", true},
		{"Labs only after 12", true},
		{"At most 6 hours per day", false},
	}
	for _, rule := range rules {
		if _, err := db.ExecContext(ctx, `INSERT INTO scheduling_rules (id, description, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT DO NOTHING`,
			uuid.NewString(), rule.description, rule.active, now); err != nil {
			log.Fatalf("failed to seed rule %q: %v", rule.description, err)
		}
	}

	log.Printf("seeded admin %s, %d courses, %d rules", adminEmail, len(courses), len(rules))
}
