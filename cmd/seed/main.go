package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/abelgas/userauth/config"
	"github.com/abelgas/userauth/internal/domain/entity"
	"github.com/abelgas/userauth/pkg/helpers"
)

// seed inserts a default admin account for local development.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := helpers.HashPassword("admin123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (email) DO NOTHING`,
		"admin", "admin@example.com", hash, "Admin", "User", entity.RoleAdmin,
	)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		log.Println("admin user already exists, nothing to do")
		return
	}
	log.Println("seeded admin@example.com (password: admin123)")
}
