package auth

import (
	"context"

	"appraisal/internal/platform/querier"
)

type AuthUser struct {
	ID           int64
	Email        string
	PasswordHash string
	RoleName     string
	EmployeeID   int64
	Active       bool
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	if err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.email, u.password_hash, u.role, COALESCE(u.employee_id, 0), u.active
    FROM users u
    WHERE lower(u.email) = lower($1)
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.RoleName, &user.EmployeeID, &user.Active); err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", userID)
	return err
}
