// Package repository defines storage interfaces implemented by concrete backends.
// Every method of an owned entity takes the owner id and never crosses it.
package repository

import (
	"context"

	"github.com/and161185/dev-diary/internal/model"
)

// UserRepository provides access to accounts.
type UserRepository interface {
	// Create inserts a new user and fills ID and timestamps.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdatePasswordHash replaces the stored digest.
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
