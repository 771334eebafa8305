package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Demo account used when a request does not name a user.
const (
	DemoUserEmail   = "demo@pitchcraft.ai"
	DemoUserName    = "Demo User"
	DemoUserCompany = "Demo Company"
)

// EnsureUser returns the user with email, creating it when missing.
func (s *Store) EnsureUser(ctx context.Context, email, name, company string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email, name, company = DemoUserEmail, DemoUserName, DemoUserCompany
	}
	if name == "" {
		name = DemoUserName
	}

	u, err := s.userByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := s.timestamp()
	u = &User{ID: uuid.New(), Email: email, Name: name, Company: company, CreatedAt: now, UpdatedAt: now}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, company, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID.String(), u.Email, u.Name, u.Company, formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) userByEmail(ctx context.Context, email string) (*User, error) {
	var (
		u                User
		company          sql.NullString
		created, updated string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, company, created_at, updated_at
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.Name, &company, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Company = company.String
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &u, nil
}
