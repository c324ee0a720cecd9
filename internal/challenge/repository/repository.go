package repository

import (
	"context"

	"github.com/Huskehhh/hackthebot/internal/challenge/domain"
)

// Repository defines persistence for the challenge catalog. Entries are only
// ever added during the process lifetime, never removed.
type Repository interface {
	// GetByHTBID returns the challenge with the given HTB id, or nil if unknown.
	// It returns an error only for store failures, not for missing rows.
	GetByHTBID(ctx context.Context, htbID int64) (*domain.Challenge, error)
	// GetByName returns challenges whose name contains the given substring (case-insensitive).
	GetByName(ctx context.Context, name string) ([]*domain.Challenge, error)
	// Create persists the challenge. Creating an already-known HTB id is a no-op.
	Create(ctx context.Context, c *domain.Challenge) error
}
