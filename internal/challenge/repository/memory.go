package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Huskehhh/hackthebot/internal/challenge/domain"
)

// MemoryRepository is an in-memory Repository implementation.
type MemoryRepository struct {
	mu         sync.RWMutex
	byHTBID    map[int64]*domain.Challenge
	insertions []int64
}

// NewMemoryRepository returns an empty in-memory challenge repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byHTBID: make(map[int64]*domain.Challenge)}
}

// GetByHTBID returns the challenge with the given HTB id, or nil if unknown.
func (r *MemoryRepository) GetByHTBID(ctx context.Context, htbID int64) (*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byHTBID[htbID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetByName returns challenges whose name contains the given substring (case-insensitive),
// in insertion order.
func (r *MemoryRepository) GetByName(ctx context.Context, name string) ([]*domain.Challenge, error) {
	needle := strings.ToLower(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Challenge{}
	for _, id := range r.insertions {
		c := r.byHTBID[id]
		if strings.Contains(strings.ToLower(c.Name), needle) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Create stores the challenge. Creating an already-known HTB id is a no-op.
func (r *MemoryRepository) Create(ctx context.Context, c *domain.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byHTBID[c.HTBID]; ok {
		return nil
	}
	stored := *c
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	r.byHTBID[stored.HTBID] = &stored
	r.insertions = append(r.insertions, stored.HTBID)
	return nil
}
