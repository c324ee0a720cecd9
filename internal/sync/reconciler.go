// Package sync reconciles the HTB activity feed against recorded solves and
// runs the announcement pipeline.
package sync

import (
	"context"

	"github.com/Huskehhh/hackthebot/internal/solve/domain"
)

// KnownSolves is the membership view of the solve store needed by reconciliation.
type KnownSolves interface {
	IsSolved(ctx context.Context, userID, challengeID int64, solveType string) (bool, error)
}

// Reconcile diffs the activity snapshot against the recorded solves and
// returns the events not yet announced, preserving snapshot order. Duplicate
// events within the snapshot yield at most one output entry. A store lookup
// error aborts reconciliation; nothing is recorded here.
func Reconcile(ctx context.Context, snapshot []domain.Event, known KnownSolves) ([]domain.Event, error) {
	seen := make(map[domain.Key]struct{}, len(snapshot))
	fresh := []domain.Event{}
	for _, ev := range snapshot {
		key := ev.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		solved, err := known.IsSolved(ctx, key.UserID, key.ChallengeID, key.SolveType)
		if err != nil {
			return nil, err
		}
		if solved {
			continue
		}
		fresh = append(fresh, ev)
	}
	return fresh, nil
}
