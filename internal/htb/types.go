package htb

import "time"

// Object types reported in the team activity feed.
const (
	ObjectTypeMachine   = "machine"
	ObjectTypeChallenge = "challenge"
)

// ActivityUser identifies the team member behind a feed entry.
type ActivityUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Activity is one entry of the recent team activity feed. The feed is
// reverse-chronological: newest entries first.
type Activity struct {
	User                ActivityUser `json:"user"`
	Date                time.Time    `json:"date"`
	SolveType           string       `json:"type"`
	ObjectType          string       `json:"object_type"`
	ID                  int64        `json:"id"`
	Name                string       `json:"name"`
	Points              int64        `json:"points"`
	ChallengeCategoryID int64        `json:"challenge_category_id"`
	MachineAvatar       string       `json:"machine_avatar"`
}

// RankStats is the team's current leaderboard position.
type RankStats struct {
	Rank   int   `json:"rank"`
	Points int64 `json:"points"`
}

// ChallengeItem is one active challenge from the challenge list.
// Points arrive as a string on this endpoint.
type ChallengeItem struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Difficulty          string `json:"difficulty"`
	Points              string `json:"points"`
	ReleaseDate         string `json:"release_date"`
	ChallengeCategoryID int64  `json:"challenge_category_id"`
	Avatar              string `json:"avatar"`
}

// MachineItem is one active machine from the machine list.
type MachineItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficultyText"`
	Points     int64  `json:"points"`
	Release    string `json:"release"`
	Avatar     string `json:"avatar"`
}

// Category is one entry of the challenge category list.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type loginResponse struct {
	Message struct {
		AccessToken string `json:"access_token"`
	} `json:"message"`
}

type challengeListResponse struct {
	Challenges []ChallengeItem `json:"challenges"`
}

type machineListResponse struct {
	Info []MachineItem `json:"info"`
}

type categoryListResponse struct {
	Info []Category `json:"info"`
}
