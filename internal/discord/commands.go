package discord

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Huskehhh/hackthebot/internal/challenge"
	chaldomain "github.com/Huskehhh/hackthebot/internal/challenge/domain"
	chalrepo "github.com/Huskehhh/hackthebot/internal/challenge/repository"
	solverepo "github.com/Huskehhh/hackthebot/internal/solve/repository"
)

const commandTimeout = 10 * time.Second

const (
	searchUsage = "Usage: ``!htb search \"Challenge name\"``"
	solvesUsage = "Usage: ``!htb solves \"Username\"``"
)

// Commands answers chat queries from the catalog and solve stores. All reads
// hit local state; commands never call the HTB API.
type Commands struct {
	challenges chalrepo.Repository
	solves     solverepo.Repository
	catalog    *challenge.Catalog
}

// NewCommands returns the command handler set.
func NewCommands(challenges chalrepo.Repository, solves solverepo.Repository, catalog *challenge.Catalog) *Commands {
	return &Commands{challenges: challenges, solves: solves, catalog: catalog}
}

// Register attaches the message handler to the session. Call before opening it.
func (c *Commands) Register(session *discordgo.Session) {
	session.AddHandler(c.onMessage)
}

func (c *Commands) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	cmd, arg, ok := parseCommand(m.Content)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var err error
	switch cmd {
	case "search":
		err = c.search(ctx, s, m, arg)
	case "solves":
		err = c.userSolves(ctx, s, m, arg)
	default:
		return
	}
	if err != nil {
		log.Printf("discord: %s command: %v", cmd, err)
	}
}

func (c *Commands) search(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, name string) error {
	if name == "" {
		return reply(ctx, s, m, searchUsage)
	}

	matches, err := c.challenges.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("searching catalog for %q: %w", name, err)
	}
	if len(matches) == 0 {
		return reply(ctx, s, m, "No challenge found by that name!")
	}

	for _, ch := range matches {
		solvers, err := c.solves.ListSolvers(ctx, ch.HTBID)
		if err != nil {
			return fmt.Errorf("listing solvers of %q: %w", ch.Name, err)
		}
		embed := challengeEmbed(ch, c.catalog.Label(ch.CategoryID), solvers)
		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("sending challenge embed: %w", err)
		}
	}
	return nil
}

func (c *Commands) userSolves(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, username string) error {
	if username == "" {
		return reply(ctx, s, m, solvesUsage)
	}

	solves, err := c.solves.ListByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("listing solves for %q: %w", username, err)
	}
	if len(solves) == 0 {
		return reply(ctx, s, m, "No solves found for that user!")
	}

	for _, sv := range solves {
		ch, err := c.challenges.GetByHTBID(ctx, sv.ChallengeID)
		if err != nil {
			return fmt.Errorf("looking up challenge %d: %w", sv.ChallengeID, err)
		}
		if ch == nil {
			// Solved before the catalog loop first saw it; skip rather than fail.
			continue
		}
		solvers, err := c.solves.ListSolvers(ctx, ch.HTBID)
		if err != nil {
			return fmt.Errorf("listing solvers of %q: %w", ch.Name, err)
		}
		embed := challengeEmbed(ch, c.catalog.Label(ch.CategoryID), solvers)
		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("sending challenge embed: %w", err)
		}
	}
	return nil
}

func reply(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, content string) error {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference(), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("replying: %w", err)
	}
	return nil
}

// parseCommand splits a "!htb <cmd> <arg>" (or "!h") message. ok reports
// whether the prefix matched at all; arg is unquoted and may be empty.
func parseCommand(content string) (cmd, arg string, ok bool) {
	prefix, rest, found := strings.Cut(strings.TrimSpace(content), " ")
	if prefix != "!htb" && prefix != "!h" {
		return "", "", false
	}
	if !found {
		return "", "", false
	}
	cmd, argPart, _ := strings.Cut(strings.TrimSpace(rest), " ")
	return cmd, unquote(strings.TrimSpace(argPart)), true
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func challengeEmbed(ch *chaldomain.Challenge, category string, solvers []string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: ch.Name,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📚 Category", Value: category, Inline: true},
			{Name: "💰 Points", Value: strconv.FormatInt(ch.Points, 10), Inline: true},
			{Name: "📈 Difficulty", Value: ch.Difficulty, Inline: true},
		},
	}
	if ch.ReleaseDate != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "📅 Released", Value: ch.ReleaseDate, Inline: true,
		})
	}
	if len(solvers) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "✅ Solved by", Value: strings.Join(solvers, ", "),
		})
	}
	if ch.MachineAvatar != nil && *ch.MachineAvatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarBaseURL + *ch.MachineAvatar}
	}
	return embed
}
