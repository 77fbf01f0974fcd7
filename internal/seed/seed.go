package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/OkuOrgil3757/business-calculator/internal/breakeven"
	"github.com/OkuOrgil3757/business-calculator/internal/store"
)

const demoName = "Demo product"

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	// Demo stores a sample calculation when no calculations exist.
	Demo bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, calculations store.Store, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	if cfg.Demo {
		if err := ensureDemoCalculation(ctx, calculations, &stats); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var hash string
	err := tx.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE email = ?`, email).Scan(&hash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		newHash, err := HashPassword(password)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, newHash); err != nil {
			return fmt.Errorf("insert admin user: %w", err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("query admin user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil {
		return nil
	}

	// The configured password changed since the last start.
	newHash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE email = ?`, newHash, email); err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	stats.Updates++
	return nil
}

// HashPassword returns the bcrypt hash stored for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(hash), nil
}

func ensureDemoCalculation(ctx context.Context, calculations store.Store, stats *Stats) error {
	existing, err := calculations.List(ctx, "")
	if err != nil {
		return fmt.Errorf("list calculations: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	demo, _ := breakeven.Calculate(breakeven.Input{
		Name:           demoName,
		Units:          100,
		ProductCost:    2,
		Transportation: 0.5,
		Tax:            0.25,
		StaffSalary:    500,
		Price:          breakeven.AutoFromMargin(30),
	})
	if _, err := calculations.Append(ctx, demo); err != nil {
		return fmt.Errorf("insert demo calculation: %w", err)
	}
	stats.Inserts++
	return nil
}
