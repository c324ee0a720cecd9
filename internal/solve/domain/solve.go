// Package domain holds the activity event and recorded solve types for the sync engine.
package domain

import "time"

// Solve type values as reported by the HTB activity feed.
const (
	// TypeUser is a user flag on a machine.
	TypeUser = "user"
	// TypeRoot is a root/system flag on a machine.
	TypeRoot = "root"
	// TypeChallenge is a challenge solve.
	TypeChallenge = "challenge"
)

// User identifies a team member as reported by the activity feed.
type User struct {
	ID   int64
	Name string
}

// Event is one solve/ownership action fetched from the activity feed.
// Immutable once fetched. ChallengeID is the id of the challenge or machine
// acted on; it is not unique across users.
type Event struct {
	ChallengeID int64
	User        User
	SolveType   string
	Name        string
	CategoryID  int64
	Points      int64
	Avatar      string
	Date        time.Time
}

// Key returns the dedup identity of the event. The same user cannot re-solve
// a given challenge for a given solve type, so two events with equal keys are
// the same solve.
func (e Event) Key() Key {
	return Key{UserID: e.User.ID, ChallengeID: e.ChallengeID, SolveType: e.SolveType}
}

// Key identifies a recorded solve by (user, challenge, solve type).
type Key struct {
	UserID      int64
	ChallengeID int64
	SolveType   string
}

// Solve is a recorded, already-announced solve.
type Solve struct {
	ID          string
	UserID      int64
	Username    string
	SolveType   string
	ChallengeID int64
	AnnouncedAt time.Time
}

// Key returns the solve's dedup identity.
func (s *Solve) Key() Key {
	return Key{UserID: s.UserID, ChallengeID: s.ChallengeID, SolveType: s.SolveType}
}
