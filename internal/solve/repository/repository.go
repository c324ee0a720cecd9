package repository

import (
	"context"

	"github.com/Huskehhh/hackthebot/internal/solve/domain"
)

// Repository defines persistence for announced solves. Implementations must be
// safe for concurrent use; Record is append-only and idempotent, and is only
// called after the solve has been announced.
type Repository interface {
	// IsSolved reports whether the (user, challenge, solve type) solve has been recorded.
	IsSolved(ctx context.Context, userID, challengeID int64, solveType string) (bool, error)
	// Record persists the solve. Recording the same identity twice is a no-op, not an error.
	Record(ctx context.Context, s *domain.Solve) error
	// ListByUsername returns recorded solves for the given user name (case-insensitive),
	// oldest first. Returns an empty slice when the user has none.
	ListByUsername(ctx context.Context, username string) ([]*domain.Solve, error)
	// ListSolvers returns the names of users who recorded a solve on the challenge.
	ListSolvers(ctx context.Context, challengeID int64) ([]string, error)
}
