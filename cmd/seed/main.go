package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ideavote/internal/config"
	"ideavote/internal/db"
	"ideavote/internal/model"
	"ideavote/internal/repository"
)

// Sample ideas inserted when the board is empty, one per category.
var sampleIdeas = []model.Idea{
	{Title: "After-school coding club", Category: "Education", Description: "Weekly sessions teaching kids to build small games.", Summary: "Coding club for kids"},
	{Title: "Community composting bins", Category: "Environment", Description: "Shared composting stations for the neighborhood gardens.", Summary: "Neighborhood composting"},
	{Title: "Monthly repair café", Category: "Community", Description: "Volunteers help fix broken appliances instead of discarding them.", Summary: "Fix, don't toss"},
	{Title: "Open sensor network", Category: "Technology", Description: "Low-cost air quality sensors publishing open data.", Summary: "Open air quality data"},
	{Title: "Free blood pressure checks", Category: "Health", Description: "Pop-up stands at the market offering quick health checks.", Summary: "Market health stands"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Idea{}, &model.Vote{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	ideaRepo := repository.NewIdeaRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := seedIdeas(ctx, gormDB, ideaRepo); err != nil {
		log.Fatalf("Failed to seed ideas: %v", err)
	}

	log.Println("Seed completed")
}

// seedAdmin ensures a bootstrap admin account exists. Credentials come from
// SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD; accounts are otherwise only
// mintable by an existing admin.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	username := envOr("SEED_ADMIN_USERNAME", "admin")
	password := envOr("SEED_ADMIN_PASSWORD", "admin")

	if _, err := users.FindByUsername(ctx, username); err == nil {
		log.Printf("Admin user %q already exists, skipping", username)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %q", username)
	return nil
}

func seedIdeas(ctx context.Context, gormDB *gorm.DB, ideas repository.IdeaRepository) error {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.Idea{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Ideas table already has %d rows, skipping samples", count)
		return nil
	}

	for i := range sampleIdeas {
		if err := ideas.Create(ctx, &sampleIdeas[i]); err != nil {
			return err
		}
	}
	log.Printf("Inserted %d sample ideas", len(sampleIdeas))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
