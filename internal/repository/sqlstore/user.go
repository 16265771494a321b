package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

// ListUsers returns every user in insertion order, password hash included.
// Stripping it is the serializer's job.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.query(ctx,
		`SELECT id, username, email, password, is_active FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating users: %w", err)
	}

	return users, nil
}

// GetUser returns apperror.ErrNotFound if no user has this id.
func (db *DB) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := db.queryRow(ctx,
		`SELECT id, username, email, password, is_active FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlstore: getting user %d: %w", id, err)
	}

	return &u, nil
}

// CreateUser inserts the user and sets user.ID. A username or email that is
// already taken comes back as apperror.ErrConstraint.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	id, err := db.insert(ctx,
		`INSERT INTO users (username, email, password, is_active) VALUES (?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.IsActive,
	)
	if err != nil {
		if isConstraintError(err) {
			return apperror.ConstraintViolation(
				fmt.Sprintf("username %q or email %q is already taken", user.Username, user.Email), err)
		}
		return fmt.Errorf("sqlstore: creating user %q: %w", user.Username, err)
	}

	user.ID = id
	return nil
}
