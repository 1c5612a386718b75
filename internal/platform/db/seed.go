package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/auth"
	"appraisal/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureDefaultType(ctx, pool); err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureDefaultType(ctx context.Context, pool *pgxpool.Pool) error {
	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM appraisal_types WHERE name = $1", "Annual").Scan(&id)
	if err == nil {
		return nil
	}

	if err := pool.QueryRow(ctx, "INSERT INTO appraisal_types (name) VALUES ($1) RETURNING id", "Annual").Scan(&id); err != nil {
		return err
	}
	for _, name := range []string{"Exceeds Expectations", "Meets Expectations", "Below Expectations"} {
		if _, err := pool.Exec(ctx, "INSERT INTO appraisal_ranges (type_id, name) VALUES ($1, $2)", id, name); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	var employeeID int64
	err = pool.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, active)
    VALUES ($1, $2, $3, TRUE) RETURNING id
  `, "HR", "Admin", email).Scan(&employeeID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return pool.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id, active)
    VALUES ($1, $2, $3, $4, TRUE) RETURNING id
  `, email, hash, auth.RoleHR, employeeID).Scan(&id)
}
