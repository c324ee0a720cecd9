// Command hackthebot announces Hack The Box team solves to a Discord channel
// and answers catalog queries in chat.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Huskehhh/hackthebot/internal/challenge"
	chalrepo "github.com/Huskehhh/hackthebot/internal/challenge/repository"
	"github.com/Huskehhh/hackthebot/internal/config"
	"github.com/Huskehhh/hackthebot/internal/db"
	"github.com/Huskehhh/hackthebot/internal/discord"
	"github.com/Huskehhh/hackthebot/internal/htb"
	"github.com/Huskehhh/hackthebot/internal/metrics"
	"github.com/Huskehhh/hackthebot/internal/scheduler"
	solverepo "github.com/Huskehhh/hackthebot/internal/solve/repository"
	htbsync "github.com/Huskehhh/hackthebot/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var solves solverepo.Repository
	var challenges chalrepo.Repository
	memoryStore := cfg.DatabaseURL == ""
	if !memoryStore {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("opening database: %v", err)
		}
		defer conn.Close()
		solves = solverepo.NewPostgresRepository(conn)
		challenges = chalrepo.NewPostgresRepository(conn)
	} else {
		log.Println("DATABASE_URL not set, using in-memory stores")
		solves = solverepo.NewMemoryRepository()
		challenges = chalrepo.NewMemoryRepository()
	}

	catalog := challenge.NewCatalog()
	client := htb.NewClient(htb.Config{
		Email:    cfg.HTBEmail,
		Password: cfg.HTBPassword,
		TeamID:   cfg.HTBTeamID,
		BaseURL:  cfg.HTBBaseURL,
	})

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("creating discord session: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	discord.NewCommands(challenges, solves, catalog).Register(session)
	if err := session.Open(); err != nil {
		log.Fatalf("opening discord session: %v", err)
	}
	defer session.Close()

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New(cfg.MetricsAddr)
		go func() {
			if err := m.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("metrics server: %v", err)
			}
		}()
		defer func() {
			sdCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = m.Shutdown(sdCtx)
		}()
	}

	announcer := discord.NewAnnouncer(session, cfg.DiscordChannelID)
	syncer := htbsync.New(client, solves, challenges, catalog, announcer, m)

	// The in-memory store starts empty, so seed it from the current feed before
	// the loops start; otherwise a restart replays every solve the feed still
	// exposes. The durable store keeps its history across restarts and must NOT
	// be primed: a solve that happened while the bot was down has to come out
	// of reconciliation as a late announcement, not be swallowed at startup.
	primeCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	if memoryStore {
		if err := syncer.PrimeSolves(primeCtx); err != nil {
			cancel()
			log.Fatalf("priming solve cache: %v", err)
		}
	}
	// Prime the category labels too, so the first announcements don't all
	// render as Unknown. Completeness is not required, so failure is not fatal.
	if err := syncer.SyncCatalog(primeCtx); err != nil {
		log.Printf("priming catalog: %v", err)
	} else {
		log.Printf("catalog primed with %d categories", catalog.Len())
	}
	cancel()

	sched := scheduler.New(m,
		scheduler.Loop{Name: metrics.LoopSolves, Interval: cfg.SolveInterval(), Run: syncer.SyncSolves},
		scheduler.Loop{Name: metrics.LoopCatalog, Interval: cfg.CatalogInterval(), Run: syncer.SyncCatalog},
		scheduler.Loop{Name: metrics.LoopRank, Interval: cfg.RankInterval(), Run: syncer.SyncRank},
	)

	log.Printf("hackthebot running for team %d", cfg.HTBTeamID)
	sched.Run(ctx)
	log.Println("shutting down")
}
