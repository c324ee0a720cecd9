package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv() {
	os.Setenv("DISCORD_TOKEN", "discord-token")
	os.Setenv("HTB_CHANNEL_ID", "123456789012345678")
	os.Setenv("HTB_TEAM_ID", "2102")
	os.Setenv("HTB_EMAIL", "team@example.com")
	os.Setenv("HTB_PASSWORD", "hunter2")
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTBBaseURL != "https://www.hackthebox.eu" {
		t.Errorf("HTBBaseURL = %q, want default", cfg.HTBBaseURL)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
	if cfg.SolvePollInterval != "60s" {
		t.Errorf("SolvePollInterval = %q, want %q", cfg.SolvePollInterval, "60s")
	}
	if cfg.CatalogPollInterval != "24h" {
		t.Errorf("CatalogPollInterval = %q, want %q", cfg.CatalogPollInterval, "24h")
	}
	if cfg.RankPollInterval != "24h" {
		t.Errorf("RankPollInterval = %q, want %q", cfg.RankPollInterval, "24h")
	}
}

func TestLoad_ReadsValues(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()
	os.Setenv("DATABASE_URL", "postgres://localhost/htb")
	os.Setenv("METRICS_ADDR", ":9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DiscordToken != "discord-token" {
		t.Errorf("DiscordToken = %q", cfg.DiscordToken)
	}
	if cfg.DiscordChannelID != "123456789012345678" {
		t.Errorf("DiscordChannelID = %q", cfg.DiscordChannelID)
	}
	if cfg.HTBTeamID != 2102 {
		t.Errorf("HTBTeamID = %d, want 2102", cfg.HTBTeamID)
	}
	if cfg.DatabaseURL != "postgres://localhost/htb" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Errorf("MetricsAddr = %q, want :9100", cfg.MetricsAddr)
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	testCases := []struct {
		name  string
		unset string
	}{
		{"missing discord token", "DISCORD_TOKEN"},
		{"missing channel id", "HTB_CHANNEL_ID"},
		{"missing team id", "HTB_TEAM_ID"},
		{"missing email", "HTB_EMAIL"},
		{"missing password", "HTB_PASSWORD"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			setRequiredEnv()
			os.Unsetenv(tc.unset)

			cfg, err := Load()
			if err == nil {
				t.Fatalf("Load should return error when %s is unset", tc.unset)
			}
			if cfg != nil {
				t.Error("Load should return nil config on error")
			}
		})
	}
}

func TestSolveInterval_ValidDuration(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()
	os.Setenv("SOLVE_POLL_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.SolveInterval(); got != 30*time.Second {
		t.Errorf("SolveInterval = %v, want %v", got, 30*time.Second)
	}
}

func TestSolveInterval_InvalidDuration(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()
	os.Setenv("SOLVE_POLL_INTERVAL", "invalid")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.SolveInterval(); got != 60*time.Second {
		t.Errorf("SolveInterval = %v, want %v (default)", got, 60*time.Second)
	}
}

func TestSolveInterval_NegativeDuration(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()
	os.Setenv("SOLVE_POLL_INTERVAL", "-1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.SolveInterval(); got != 60*time.Second {
		t.Errorf("SolveInterval = %v, want %v (default)", got, 60*time.Second)
	}
}

func TestCatalogAndRankIntervals(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()
	os.Setenv("CATALOG_POLL_INTERVAL", "12h")
	os.Setenv("RANK_POLL_INTERVAL", "6h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.CatalogInterval(); got != 12*time.Hour {
		t.Errorf("CatalogInterval = %v, want %v", got, 12*time.Hour)
	}
	if got := cfg.RankInterval(); got != 6*time.Hour {
		t.Errorf("RankInterval = %v, want %v", got, 6*time.Hour)
	}
}

func TestCatalogInterval_InvalidDuration(t *testing.T) {
	os.Clearenv()
	setRequiredEnv()
	os.Setenv("CATALOG_POLL_INTERVAL", "tomorrow")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.CatalogInterval(); got != 24*time.Hour {
		t.Errorf("CatalogInterval = %v, want %v (default)", got, 24*time.Hour)
	}
}
