package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Huskehhh/hackthebot/internal/solve/domain"
)

func TestMemoryRepository_RecordAndIsSolved(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	solved, err := repo.IsSolved(ctx, 1, 42, domain.TypeUser)
	if err != nil {
		t.Fatalf("IsSolved: %v", err)
	}
	if solved {
		t.Error("IsSolved should be false before Record")
	}

	err = repo.Record(ctx, &domain.Solve{UserID: 1, Username: "ferib", SolveType: domain.TypeUser, ChallengeID: 42})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	solved, err = repo.IsSolved(ctx, 1, 42, domain.TypeUser)
	if err != nil {
		t.Fatalf("IsSolved: %v", err)
	}
	if !solved {
		t.Error("IsSolved should be true after Record")
	}
}

func TestMemoryRepository_RecordIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	s := &domain.Solve{UserID: 1, Username: "ferib", SolveType: domain.TypeUser, ChallengeID: 42}
	if err := repo.Record(ctx, s); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.Record(ctx, s); err != nil {
		t.Fatalf("second Record should be a no-op, got: %v", err)
	}

	solves, err := repo.ListByUsername(ctx, "ferib")
	if err != nil {
		t.Fatalf("ListByUsername: %v", err)
	}
	if len(solves) != 1 {
		t.Errorf("len(solves) = %d, want 1", len(solves))
	}
}

func TestMemoryRepository_SolveTypeIsPartOfIdentity(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Record(ctx, &domain.Solve{UserID: 1, Username: "ferib", SolveType: domain.TypeUser, ChallengeID: 42}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	solved, err := repo.IsSolved(ctx, 1, 42, domain.TypeRoot)
	if err != nil {
		t.Fatalf("IsSolved: %v", err)
	}
	if solved {
		t.Error("root flag should not be marked solved by a user flag on the same machine")
	}
}

func TestMemoryRepository_PerActorIsolation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Record(ctx, &domain.Solve{UserID: 1, Username: "ferib", SolveType: domain.TypeUser, ChallengeID: 42}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	solved, err := repo.IsSolved(ctx, 2, 42, domain.TypeUser)
	if err != nil {
		t.Fatalf("IsSolved: %v", err)
	}
	if solved {
		t.Error("recording a solve for user 1 must not affect user 2 on the same challenge")
	}
}

func TestMemoryRepository_ListByUsername_CaseInsensitive(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, chal := range []int64{10, 11, 12} {
		err := repo.Record(ctx, &domain.Solve{
			UserID:      7,
			Username:    "Rehman",
			SolveType:   domain.TypeChallenge,
			ChallengeID: chal,
			AnnouncedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	solves, err := repo.ListByUsername(ctx, "rehman")
	if err != nil {
		t.Fatalf("ListByUsername: %v", err)
	}
	if len(solves) != 3 {
		t.Fatalf("len(solves) = %d, want 3", len(solves))
	}
	for i := 1; i < len(solves); i++ {
		if solves[i].AnnouncedAt.Before(solves[i-1].AnnouncedAt) {
			t.Error("solves should be ordered oldest first")
		}
	}
}

func TestMemoryRepository_ListByUsername_StampsInRecordOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.nowF = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	// No AnnouncedAt on the records: the repository stamps them itself.
	for _, chal := range []int64{12, 10, 11} {
		err := repo.Record(ctx, &domain.Solve{
			UserID:      7,
			Username:    "ferib",
			SolveType:   domain.TypeChallenge,
			ChallengeID: chal,
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	solves, err := repo.ListByUsername(ctx, "ferib")
	if err != nil {
		t.Fatalf("ListByUsername: %v", err)
	}
	want := []int64{12, 10, 11}
	if len(solves) != len(want) {
		t.Fatalf("len(solves) = %d, want %d", len(solves), len(want))
	}
	for i, id := range want {
		if solves[i].ChallengeID != id {
			t.Errorf("solves[%d].ChallengeID = %d, want %d (record order)", i, solves[i].ChallengeID, id)
		}
	}
}

func TestMemoryRepository_ListSolvers(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Record(ctx, &domain.Solve{UserID: 1, Username: "ferib", SolveType: domain.TypeUser, ChallengeID: 42}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.Record(ctx, &domain.Solve{UserID: 1, Username: "ferib", SolveType: domain.TypeRoot, ChallengeID: 42}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.Record(ctx, &domain.Solve{UserID: 2, Username: "mkrupa", SolveType: domain.TypeUser, ChallengeID: 42}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := repo.Record(ctx, &domain.Solve{UserID: 3, Username: "zor", SolveType: domain.TypeUser, ChallengeID: 7}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	solvers, err := repo.ListSolvers(ctx, 42)
	if err != nil {
		t.Fatalf("ListSolvers: %v", err)
	}
	if len(solvers) != 2 {
		t.Errorf("len(solvers) = %d, want 2 (names deduplicated)", len(solvers))
	}
}

func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			_ = repo.Record(ctx, &domain.Solve{
				UserID:      id,
				Username:    fmt.Sprintf("user-%d", id),
				SolveType:   domain.TypeChallenge,
				ChallengeID: 100 + id,
			})
		}(int64(i))
		go func(id int64) {
			defer wg.Done()
			_, _ = repo.IsSolved(ctx, id, 100+id, domain.TypeChallenge)
		}(int64(i))
	}
	wg.Wait()
}
