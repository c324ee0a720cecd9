package sync

import "context"

// Announcement is one reconciled solve ready for delivery.
type Announcement struct {
	Solver     string
	SolveType  string
	Name       string
	Category   string
	Points     int64
	AvatarPath string
}

// Announcer is the outbound notification boundary. Delivery failures are
// isolated per event: the caller logs them and retries on the next cycle.
type Announcer interface {
	// AnnounceSolve delivers one solve announcement to the configured channel.
	AnnounceSolve(ctx context.Context, a *Announcement) error
	// SetStatusTopic overwrites the channel's status string with the current
	// rank summary. No history is kept.
	SetStatusTopic(ctx context.Context, topic string) error
}
