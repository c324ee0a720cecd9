// Package discord delivers solve announcements and answers chat commands over
// a Discord session.
package discord

import (
	"context"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	htbsync "github.com/Huskehhh/hackthebot/internal/sync"
)

const avatarBaseURL = "https://www.hackthebox.eu/"

// Announcer posts solve embeds to a single channel and maintains its topic.
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

// NewAnnouncer returns an Announcer bound to the given channel.
func NewAnnouncer(session *discordgo.Session, channelID string) *Announcer {
	return &Announcer{session: session, channelID: channelID}
}

// AnnounceSolve posts one solve embed to the announcement channel.
func (a *Announcer) AnnounceSolve(ctx context.Context, ann *htbsync.Announcement) error {
	if _, err := a.session.ChannelMessageSendEmbed(a.channelID, solveEmbed(ann), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("sending solve embed: %w", err)
	}
	return nil
}

// SetStatusTopic overwrites the announcement channel's topic.
func (a *Announcer) SetStatusTopic(ctx context.Context, topic string) error {
	edit := &discordgo.ChannelEdit{Topic: topic}
	if _, err := a.session.ChannelEditComplex(a.channelID, edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("editing channel topic: %w", err)
	}
	return nil
}

func solveEmbed(a *htbsync.Announcement) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: solveTitle(a),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📚 Category", Value: a.Category, Inline: true},
			{Name: "💰 Points", Value: strconv.FormatInt(a.Points, 10), Inline: true},
		},
	}
	if a.AvatarPath != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarBaseURL + a.AvatarPath}
	}
	return embed
}

// solveTitle phrases challenge solves and machine owns differently: machines
// report the conquered part (user or root shell) rather than the solve itself.
func solveTitle(a *htbsync.Announcement) string {
	solveType := capitalize(a.SolveType)
	if solveType == "Challenge" {
		return fmt.Sprintf("🏴 %s has been solved by %s", a.Name, a.Solver)
	}
	return fmt.Sprintf("🏴 %s has been owned by %s on %s", solveType, a.Solver, a.Name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
