package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"formlink/errs"
	"formlink/model"

	"golang.org/x/crypto/bcrypt"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db}
}

// Create registers an account with a bcrypt-hashed password.
func (s *UserStore) Create(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required: %w", errs.ErrInvalidRequest)
	}
	switch role {
	case model.RoleAdmin, model.RoleRespondent:
	case "":
		role = model.RoleRespondent
	default:
		return fmt.Errorf("unknown role %q: %w", role, errs.ErrInvalidRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("db.insert_user.hash: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user (username, password_hash, role) VALUES (?, ?, ?)`,
		username, string(hash), role,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("username %q taken: %w", username, errs.ErrConflict)
		}
		return unavailable("db.insert_user", err)
	}
	return nil
}
