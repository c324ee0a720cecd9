package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Huskehhh/hackthebot/internal/solve/domain"
)

// MemoryRepository is an in-memory Repository implementation. Solves recorded
// here are lost on restart; the scheduler's startup prime keeps a restart from
// replaying history still visible in the feed.
type MemoryRepository struct {
	mu     sync.RWMutex
	solves map[domain.Key]*domain.Solve
	nowF   func() time.Time
}

// NewMemoryRepository returns an empty in-memory solve repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		solves: make(map[domain.Key]*domain.Solve),
		nowF:   func() time.Time { return time.Now().UTC() },
	}
}

// IsSolved reports whether the (user, challenge, solve type) solve has been recorded.
func (r *MemoryRepository) IsSolved(ctx context.Context, userID, challengeID int64, solveType string) (bool, error) {
	key := domain.Key{UserID: userID, ChallengeID: challengeID, SolveType: solveType}
	r.mu.RLock()
	_, ok := r.solves[key]
	r.mu.RUnlock()
	return ok, nil
}

// Record stores the solve. Recording the same identity twice is a no-op.
func (r *MemoryRepository) Record(ctx context.Context, s *domain.Solve) error {
	key := s.Key()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.solves[key]; ok {
		return nil
	}
	stored := *s
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.AnnouncedAt.IsZero() {
		stored.AnnouncedAt = r.nowF()
	}
	r.solves[key] = &stored
	return nil
}

// ListByUsername returns recorded solves for the given user name (case-insensitive), oldest first.
func (r *MemoryRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Solve, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Solve{}
	for _, s := range r.solves {
		if strings.EqualFold(s.Username, username) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sortSolvesByAnnouncedAt(out)
	return out, nil
}

// ListSolvers returns the names of users who recorded a solve on the challenge.
func (r *MemoryRepository) ListSolvers(ctx context.Context, challengeID int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	out := []string{}
	for _, s := range r.solves {
		if s.ChallengeID != challengeID {
			continue
		}
		if _, ok := seen[s.Username]; ok {
			continue
		}
		seen[s.Username] = struct{}{}
		out = append(out, s.Username)
	}
	return out, nil
}

func sortSolvesByAnnouncedAt(solves []*domain.Solve) {
	sort.Slice(solves, func(i, j int) bool {
		return solves[i].AnnouncedAt.Before(solves[j].AnnouncedAt)
	})
}
