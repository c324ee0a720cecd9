// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// DiscordToken is the Discord bot token. Required.
	DiscordToken string `mapstructure:"DISCORD_TOKEN"`
	// DiscordChannelID is the snowflake of the channel that receives solve
	// announcements and the rank topic. Required.
	DiscordChannelID string `mapstructure:"HTB_CHANNEL_ID"`
	// HTBTeamID is the numeric Hack The Box team id. Required.
	HTBTeamID int64 `mapstructure:"HTB_TEAM_ID"`
	// HTBEmail is the HTB account email used to obtain the API token. Required.
	HTBEmail string `mapstructure:"HTB_EMAIL"`
	// HTBPassword is the HTB account password. Required.
	HTBPassword string `mapstructure:"HTB_PASSWORD"`
	// HTBBaseURL overrides the HTB API base URL; default https://www.hackthebox.eu.
	HTBBaseURL string `mapstructure:"HTB_API_BASE_URL"`
	// DatabaseURL is the Postgres DSN for the solve/challenge store.
	// Empty selects the in-memory store (announced solves survive only as long as the process).
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// MetricsAddr is the listen address for /metrics and /healthz (e.g. :9100).
	// Empty disables the metrics server.
	MetricsAddr string `mapstructure:"METRICS_ADDR"`
	// SolvePollInterval is the cadence of the solve sync loop (e.g. "60s").
	SolvePollInterval string `mapstructure:"SOLVE_POLL_INTERVAL"`
	// CatalogPollInterval is the cadence of the challenge catalog sync loop (e.g. "24h").
	CatalogPollInterval string `mapstructure:"CATALOG_POLL_INTERVAL"`
	// RankPollInterval is the cadence of the team rank status loop (e.g. "24h").
	RankPollInterval string `mapstructure:"RANK_POLL_INTERVAL"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are missing.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("DISCORD_TOKEN", "")
	v.SetDefault("HTB_CHANNEL_ID", "")
	v.SetDefault("HTB_TEAM_ID", 0)
	v.SetDefault("HTB_EMAIL", "")
	v.SetDefault("HTB_PASSWORD", "")
	v.SetDefault("HTB_API_BASE_URL", "https://www.hackthebox.eu")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("SOLVE_POLL_INTERVAL", "60s")
	v.SetDefault("CATALOG_POLL_INTERVAL", "24h")
	v.SetDefault("RANK_POLL_INTERVAL", "24h")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("config: DISCORD_TOKEN must be set")
	}
	if cfg.DiscordChannelID == "" {
		return nil, errors.New("config: HTB_CHANNEL_ID must be set")
	}
	if cfg.HTBTeamID == 0 {
		return nil, errors.New("config: HTB_TEAM_ID must be set")
	}
	if cfg.HTBEmail == "" {
		return nil, errors.New("config: HTB_EMAIL must be set")
	}
	if cfg.HTBPassword == "" {
		return nil, errors.New("config: HTB_PASSWORD must be set")
	}

	return &cfg, nil
}

// LoadDatabaseURL reads only DATABASE_URL from .env and the environment.
// Used by the migrate binary, which needs no bot credentials.
func LoadDatabaseURL() string {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	v.AutomaticEnv()
	v.SetDefault("DATABASE_URL", "")
	return v.GetString("DATABASE_URL")
}

// SolveInterval parses SolvePollInterval as a time.Duration. Returns 60s if unset or invalid.
func (c *Config) SolveInterval() time.Duration {
	d, err := time.ParseDuration(c.SolvePollInterval)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// CatalogInterval parses CatalogPollInterval as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) CatalogInterval() time.Duration {
	d, err := time.ParseDuration(c.CatalogPollInterval)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// RankInterval parses RankPollInterval as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) RankInterval() time.Duration {
	d, err := time.ParseDuration(c.RankPollInterval)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}
