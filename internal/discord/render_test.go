package discord

import (
	"strings"
	"testing"

	chaldomain "github.com/Huskehhh/hackthebot/internal/challenge/domain"
	htbsync "github.com/Huskehhh/hackthebot/internal/sync"
)

func TestSolveTitle(t *testing.T) {
	tests := []struct {
		name string
		ann  htbsync.Announcement
		want string
	}{
		{
			name: "challenge solve",
			ann:  htbsync.Announcement{Solver: "jane", SolveType: "challenge", Name: "Templated"},
			want: "🏴 Templated has been solved by jane",
		},
		{
			name: "user own",
			ann:  htbsync.Announcement{Solver: "jane", SolveType: "user", Name: "Lame"},
			want: "🏴 User has been owned by jane on Lame",
		},
		{
			name: "root own",
			ann:  htbsync.Announcement{Solver: "bob", SolveType: "root", Name: "Lame"},
			want: "🏴 Root has been owned by bob on Lame",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := solveTitle(&tt.ann); got != tt.want {
				t.Errorf("solveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSolveEmbed(t *testing.T) {
	ann := &htbsync.Announcement{
		Solver:     "jane",
		SolveType:  "root",
		Name:       "Lame",
		Category:   "Machine",
		Points:     20,
		AvatarPath: "storage/avatars/lame.png",
	}

	embed := solveEmbed(ann)
	if len(embed.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(embed.Fields))
	}
	if embed.Fields[0].Value != "Machine" {
		t.Errorf("category field = %q, want %q", embed.Fields[0].Value, "Machine")
	}
	if embed.Fields[1].Value != "20" {
		t.Errorf("points field = %q, want %q", embed.Fields[1].Value, "20")
	}
	if embed.Thumbnail == nil {
		t.Fatal("Thumbnail = nil, want avatar thumbnail")
	}
	if want := avatarBaseURL + "storage/avatars/lame.png"; embed.Thumbnail.URL != want {
		t.Errorf("Thumbnail.URL = %q, want %q", embed.Thumbnail.URL, want)
	}
}

func TestSolveEmbed_NoAvatar(t *testing.T) {
	embed := solveEmbed(&htbsync.Announcement{SolveType: "challenge", Name: "Templated"})
	if embed.Thumbnail != nil {
		t.Errorf("Thumbnail = %+v, want nil without an avatar path", embed.Thumbnail)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content string
		cmd     string
		arg     string
		ok      bool
	}{
		{`!htb search "Challenge name"`, "search", "Challenge name", true},
		{`!h solves "jane"`, "solves", "jane", true},
		{`!htb search Templated`, "search", "Templated", true},
		{`!htb search`, "search", "", true},
		{`hello there`, "", "", false},
		{`!htb`, "", "", false},
		{`!htbx search "x"`, "", "", false},
	}
	for _, tt := range tests {
		cmd, arg, ok := parseCommand(tt.content)
		if cmd != tt.cmd || arg != tt.arg || ok != tt.ok {
			t.Errorf("parseCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.content, cmd, arg, ok, tt.cmd, tt.arg, tt.ok)
		}
	}
}

func TestChallengeEmbed(t *testing.T) {
	avatar := "storage/avatars/lame.png"
	ch := &chaldomain.Challenge{
		HTBID:         1,
		Name:          "Lame",
		Difficulty:    "Easy",
		Points:        20,
		ReleaseDate:   "2017-03-14",
		CategoryID:    chaldomain.MachineCategoryID,
		MachineAvatar: &avatar,
	}

	embed := challengeEmbed(ch, "Machine", []string{"jane", "bob"})
	if embed.Title != "Lame" {
		t.Errorf("Title = %q, want %q", embed.Title, "Lame")
	}
	var solvedBy string
	for _, f := range embed.Fields {
		if f.Name == "✅ Solved by" {
			solvedBy = f.Value
		}
	}
	if !strings.Contains(solvedBy, "jane") || !strings.Contains(solvedBy, "bob") {
		t.Errorf("solved-by field = %q, want both solvers listed", solvedBy)
	}
	if embed.Thumbnail == nil || embed.Thumbnail.URL != avatarBaseURL+avatar {
		t.Errorf("Thumbnail = %+v, want avatar URL", embed.Thumbnail)
	}
}

func TestChallengeEmbed_NoSolvers(t *testing.T) {
	embed := challengeEmbed(&chaldomain.Challenge{Name: "Templated", Points: 10, Difficulty: "Easy"}, "Web", nil)
	for _, f := range embed.Fields {
		if f.Name == "✅ Solved by" {
			t.Errorf("embed carries a solved-by field %q, want none", f.Value)
		}
	}
}
