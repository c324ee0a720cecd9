package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Huskehhh/hackthebot/internal/challenge/domain"
)

// PostgresRepository persists the challenge catalog in the htb_challenges table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a challenge repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByHTBID returns the challenge with the given HTB id, or nil if unknown.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByHTBID(ctx context.Context, htbID int64) (*domain.Challenge, error) {
	const q = `SELECT id, htb_id, name, difficulty, points, release_date, category, machine_avatar
		FROM htb_challenges WHERE htb_id = $1`
	var c domain.Challenge
	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx, q, htbID).Scan(
		&c.ID, &c.HTBID, &c.Name, &c.Difficulty, &c.Points, &c.ReleaseDate, &c.CategoryID, &avatar,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if avatar.Valid {
		c.MachineAvatar = &avatar.String
	}
	return &c, nil
}

// likeEscaper neutralizes pattern metacharacters so a user-supplied search
// string always matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetByName returns challenges whose name contains the given substring (case-insensitive).
func (r *PostgresRepository) GetByName(ctx context.Context, name string) ([]*domain.Challenge, error) {
	const q = `SELECT id, htb_id, name, difficulty, points, release_date, category, machine_avatar
		FROM htb_challenges WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, likeEscaper.Replace(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Challenge{}
	for rows.Next() {
		var c domain.Challenge
		var avatar sql.NullString
		if err := rows.Scan(&c.ID, &c.HTBID, &c.Name, &c.Difficulty, &c.Points, &c.ReleaseDate, &c.CategoryID, &avatar); err != nil {
			return nil, err
		}
		if avatar.Valid {
			c.MachineAvatar = &avatar.String
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Create persists the challenge. The unique htb_id constraint makes creating
// an already-known challenge a no-op.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Challenge) error {
	const q = `INSERT INTO htb_challenges (id, htb_id, name, difficulty, points, release_date, category, machine_avatar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (htb_id) DO NOTHING`
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	var avatar sql.NullString
	if c.MachineAvatar != nil {
		avatar = sql.NullString{String: *c.MachineAvatar, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q, id, c.HTBID, c.Name, c.Difficulty, c.Points, c.ReleaseDate, c.CategoryID, avatar)
	return err
}
