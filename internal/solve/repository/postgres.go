package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Huskehhh/hackthebot/internal/solve/domain"
)

// PostgresRepository persists announced solves in the htb_solves table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a solve repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// IsSolved reports whether the (user, challenge, solve type) solve has been recorded.
func (r *PostgresRepository) IsSolved(ctx context.Context, userID, challengeID int64, solveType string) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM htb_solves
		WHERE user_id = $1 AND challenge_id = $2 AND solve_type = $3
	)`
	var solved bool
	if err := r.db.QueryRowContext(ctx, q, userID, challengeID, solveType).Scan(&solved); err != nil {
		return false, err
	}
	return solved, nil
}

// Record persists the solve. The unique (user_id, challenge_id, solve_type)
// constraint makes a duplicate Record a no-op.
func (r *PostgresRepository) Record(ctx context.Context, s *domain.Solve) error {
	const q = `INSERT INTO htb_solves (id, user_id, user_name, solve_type, challenge_id, announced_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT htb_solves_identity DO NOTHING`
	id := s.ID
	if id == "" {
		id = uuid.New().String()
	}
	announcedAt := s.AnnouncedAt
	if announcedAt.IsZero() {
		announcedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q, id, s.UserID, s.Username, s.SolveType, s.ChallengeID, announcedAt)
	return err
}

// ListByUsername returns recorded solves for the given user name (case-insensitive), oldest first.
func (r *PostgresRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Solve, error) {
	const q = `SELECT id, user_id, user_name, solve_type, challenge_id, announced_at
		FROM htb_solves
		WHERE lower(user_name) = lower($1)
		ORDER BY announced_at`
	rows, err := r.db.QueryContext(ctx, q, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Solve{}
	for rows.Next() {
		var s domain.Solve
		if err := rows.Scan(&s.ID, &s.UserID, &s.Username, &s.SolveType, &s.ChallengeID, &s.AnnouncedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// ListSolvers returns the names of users who recorded a solve on the challenge.
func (r *PostgresRepository) ListSolvers(ctx context.Context, challengeID int64) ([]string, error) {
	const q = `SELECT DISTINCT user_name FROM htb_solves WHERE challenge_id = $1`
	rows, err := r.db.QueryContext(ctx, q, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
