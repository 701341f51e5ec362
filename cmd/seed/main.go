package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkpost/internal/config"
	"inkpost/internal/db"
	"inkpost/internal/model"
	"inkpost/internal/query"
	"inkpost/internal/repository"
)

const (
	adminEmail    = "admin@inkpost.local"
	adminPassword = "admin-change-me"
	bcryptCost    = 12
)

var samplePosts = []struct {
	title       string
	description string
}{
	{"Welcome to Inkpost", "This is the first post on this instance. Log in as the seeded admin to manage users and posts."},
	{"Formatting tips", "Posts accept plain text descriptions and an optional image attachment of up to five megabytes."},
	{"Moderation basics", "Admins can deactivate a post to hide it from public listings without deleting it permanently."},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	posts := repository.NewPostRepository(gormDB)

	admin, err := ensureAdmin(ctx, users)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, err := seedPosts(ctx, posts, admin)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("Seed completed: admin %s, %d sample posts created", admin.Email, created)
}

// ensureAdmin creates the admin account if it does not exist yet.
func ensureAdmin(ctx context.Context, users repository.UserRepository) (*model.User, error) {
	existing, err := users.FindByEmail(ctx, adminEmail)
	if err == nil {
		log.Printf("Admin user %s already exists", adminEmail)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, err
	}
	log.Printf("Created admin user %s", adminEmail)
	return admin, nil
}

// seedPosts inserts the sample posts, skipping any title that already exists
// for the author.
func seedPosts(ctx context.Context, posts repository.PostRepository, author *model.User) (int, error) {
	existing, _, err := posts.List(ctx, query.Params{Page: 1, Limit: 100}, repository.PostFilter{AuthorID: &author.ID})
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Title] = true
	}

	created := 0
	for _, sample := range samplePosts {
		if seen[sample.title] {
			continue
		}
		post := &model.Post{
			Title:       sample.title,
			Description: sample.description,
			AuthorID:    author.ID,
			IsActive:    true,
		}
		if err := posts.Create(ctx, post); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
