package sync

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Huskehhh/hackthebot/internal/challenge"
	chaldomain "github.com/Huskehhh/hackthebot/internal/challenge/domain"
	chalrepo "github.com/Huskehhh/hackthebot/internal/challenge/repository"
	"github.com/Huskehhh/hackthebot/internal/htb"
	"github.com/Huskehhh/hackthebot/internal/metrics"
	"github.com/Huskehhh/hackthebot/internal/solve/domain"
	solverepo "github.com/Huskehhh/hackthebot/internal/solve/repository"
)

// Fetcher is the slice of the HTB client the syncer needs.
type Fetcher interface {
	HandleTokenRenewal(ctx context.Context) error
	GetRecentTeamActivity(ctx context.Context) ([]htb.Activity, error)
	GetTeamRank(ctx context.Context) (*htb.RankStats, error)
	ListActiveChallenges(ctx context.Context) ([]htb.ChallengeItem, error)
	ListActiveMachines(ctx context.Context) ([]htb.MachineItem, error)
	ListChallengeCategories(ctx context.Context) ([]htb.Category, error)
}

// Syncer owns the cycle bodies run by the scheduler loops: solve sync,
// catalog sync, and rank status. Each method is one full cycle and returns an
// error only for cycle-aborting failures; per-event delivery failures are
// logged and retried on the next cycle.
type Syncer struct {
	fetcher    Fetcher
	solves     solverepo.Repository
	challenges chalrepo.Repository
	catalog    *challenge.Catalog
	announcer  Announcer
	metrics    *metrics.Metrics
}

// New returns a Syncer with the given collaborators. metrics may be nil.
func New(fetcher Fetcher, solves solverepo.Repository, challenges chalrepo.Repository, catalog *challenge.Catalog, announcer Announcer, m *metrics.Metrics) *Syncer {
	return &Syncer{
		fetcher:    fetcher,
		solves:     solves,
		challenges: challenges,
		catalog:    catalog,
		announcer:  announcer,
		metrics:    m,
	}
}

// PrimeSolves records the current feed contents without announcing them.
// Only for the in-memory store, which starts empty on every boot: without the
// prime the first cycle would replay every solve the feed still exposes. A
// durable store must not be primed, since that would mark solves from the
// downtime window as announced without ever announcing them.
func (s *Syncer) PrimeSolves(ctx context.Context) error {
	if err := s.fetcher.HandleTokenRenewal(ctx); err != nil {
		return fmt.Errorf("renewing token: %w", err)
	}
	feed, err := s.fetcher.GetRecentTeamActivity(ctx)
	if err != nil {
		return err
	}
	for _, a := range feed {
		ev := eventFromActivity(a)
		if err := s.solves.Record(ctx, solveFromEvent(ev)); err != nil {
			return fmt.Errorf("priming solve cache: %w", err)
		}
	}
	log.Printf("sync: primed solve cache with %d feed entries", len(feed))
	return nil
}

// SyncSolves runs one solve cycle: renew token, fetch the feed, reconcile
// against the store, announce new solves oldest first, and record each one
// after its announcement is delivered.
func (s *Syncer) SyncSolves(ctx context.Context) error {
	if err := s.fetcher.HandleTokenRenewal(ctx); err != nil {
		return fmt.Errorf("renewing token: %w", err)
	}
	feed, err := s.fetcher.GetRecentTeamActivity(ctx)
	if err != nil {
		return err
	}

	// The feed arrives newest first; announce in chronological order.
	events := make([]domain.Event, 0, len(feed))
	for i := len(feed) - 1; i >= 0; i-- {
		events = append(events, eventFromActivity(feed[i]))
	}

	fresh, err := Reconcile(ctx, events, s.solves)
	if err != nil {
		return fmt.Errorf("reconciling feed: %w", err)
	}

	announced := 0
	for _, ev := range fresh {
		a := &Announcement{
			Solver:     ev.User.Name,
			SolveType:  ev.SolveType,
			Name:       ev.Name,
			Category:   s.catalog.Label(ev.CategoryID),
			Points:     ev.Points,
			AvatarPath: ev.Avatar,
		}
		if err := s.announcer.AnnounceSolve(ctx, a); err != nil {
			// Not recorded: the event stays eligible next cycle.
			log.Printf("sync: announcing %s solve of %q by %s: %v", ev.SolveType, ev.Name, ev.User.Name, err)
			s.metrics.AnnounceFailed()
			continue
		}
		s.metrics.SolveAnnounced()
		announced++
		if err := s.solves.Record(ctx, solveFromEvent(ev)); err != nil {
			// The solve may be re-announced next cycle; preferred over losing it.
			log.Printf("sync: recording solve of %q by %s: %v", ev.Name, ev.User.Name, err)
		}
	}
	if announced > 0 {
		log.Printf("sync: announced %d new solves", announced)
	}
	return nil
}

// SyncCatalog refreshes the category labels and inserts challenges and
// machines not yet in the catalog store.
func (s *Syncer) SyncCatalog(ctx context.Context) error {
	if err := s.fetcher.HandleTokenRenewal(ctx); err != nil {
		return fmt.Errorf("renewing token: %w", err)
	}

	categories, err := s.fetcher.ListChallengeCategories(ctx)
	if err != nil {
		return err
	}
	for _, cat := range categories {
		s.catalog.Put(cat.ID, cat.Name)
	}

	challenges, err := s.fetcher.ListActiveChallenges(ctx)
	if err != nil {
		return err
	}
	for _, c := range challenges {
		existing, err := s.challenges.GetByHTBID(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("looking up challenge %d: %w", c.ID, err)
		}
		if existing != nil {
			continue
		}
		points, err := strconv.ParseInt(c.Points, 10, 64)
		if err != nil {
			return fmt.Errorf("challenge %q has malformed points %q: %w", c.Name, c.Points, err)
		}
		log.Printf("sync: found new challenge %q, adding to catalog", c.Name)
		entry := &chaldomain.Challenge{
			HTBID:       c.ID,
			Name:        c.Name,
			Difficulty:  c.Difficulty,
			Points:      points,
			ReleaseDate: c.ReleaseDate,
			CategoryID:  c.ChallengeCategoryID,
		}
		if c.Avatar != "" {
			avatar := c.Avatar
			entry.MachineAvatar = &avatar
		}
		if err := s.challenges.Create(ctx, entry); err != nil {
			return fmt.Errorf("inserting challenge %q: %w", c.Name, err)
		}
	}

	machines, err := s.fetcher.ListActiveMachines(ctx)
	if err != nil {
		return err
	}
	for _, m := range machines {
		existing, err := s.challenges.GetByHTBID(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("looking up machine %d: %w", m.ID, err)
		}
		if existing != nil {
			continue
		}
		log.Printf("sync: found new machine %q, adding to catalog", m.Name)
		avatar := m.Avatar
		entry := &chaldomain.Challenge{
			HTBID:         m.ID,
			Name:          m.Name,
			Difficulty:    m.Difficulty,
			Points:        m.Points,
			ReleaseDate:   m.Release,
			CategoryID:    chaldomain.MachineCategoryID,
			MachineAvatar: &avatar,
		}
		if err := s.challenges.Create(ctx, entry); err != nil {
			return fmt.Errorf("inserting machine %q: %w", m.Name, err)
		}
	}
	return nil
}

// SyncRank fetches the team's rank and overwrites the channel status topic.
func (s *Syncer) SyncRank(ctx context.Context) error {
	if err := s.fetcher.HandleTokenRenewal(ctx); err != nil {
		return fmt.Errorf("renewing token: %w", err)
	}
	stats, err := s.fetcher.GetTeamRank(ctx)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("Team rank %d, Points: %d. Last updated: %s",
		stats.Rank, stats.Points, time.Now().Format("Mon Jan _2 15:04:05"))
	if err := s.announcer.SetStatusTopic(ctx, topic); err != nil {
		return fmt.Errorf("updating channel topic: %w", err)
	}
	return nil
}

func eventFromActivity(a htb.Activity) domain.Event {
	categoryID := a.ChallengeCategoryID
	if a.ObjectType == htb.ObjectTypeMachine {
		categoryID = chaldomain.MachineCategoryID
	}
	return domain.Event{
		ChallengeID: a.ID,
		User:        domain.User{ID: a.User.ID, Name: a.User.Name},
		SolveType:   a.SolveType,
		Name:        a.Name,
		CategoryID:  categoryID,
		Points:      a.Points,
		Avatar:      a.MachineAvatar,
		Date:        a.Date,
	}
}

func solveFromEvent(ev domain.Event) *domain.Solve {
	return &domain.Solve{
		UserID:      ev.User.ID,
		Username:    ev.User.Name,
		SolveType:   ev.SolveType,
		ChallengeID: ev.ChallengeID,
	}
}
