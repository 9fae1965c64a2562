package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/persistence"
	"github.com/spec-kit/support-desk/internal/repository"
)

// Seeds the initial admin account. There is no registration path for the
// admin role; every API-registered account gets the user role.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	email := getEnv("SEED_ADMIN_EMAIL", "admin@support-desk.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "changeme123")
	name := getEnv("SEED_ADMIN_NAME", "Support Admin")

	users := repository.NewUserRepository(pg.PoolHandle())
	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Printf("admin account %s already exists; nothing to do", email)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("failed to check admin account: %v", err)
	}

	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin account: %v", err)
	}
	log.Printf("created admin account %s (id=%s)", email, admin.ID)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
