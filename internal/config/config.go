// Package config provides configuration management for the best-odds scanner.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App            AppConfig               `mapstructure:"app" validate:"required"`
	Scraper        ScraperConfig           `mapstructure:"scraper" validate:"required"`
	Odds           OddsConfig              `mapstructure:"odds" validate:"required"`
	Alignment      AlignmentConfig         `mapstructure:"alignment"`
	Betting        BettingConfig           `mapstructure:"betting" validate:"required"`
	SelectedLeague string                  `mapstructure:"selected_league" validate:"required"`
	Leagues        map[string]LeagueConfig `mapstructure:"leagues" validate:"required,min=1,dive"`
	Watch          WatchConfig             `mapstructure:"watch"`
	Notify         NotifyConfig            `mapstructure:"notify"`
	Metrics        MetricsConfig           `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ScraperConfig controls how bookmaker pages are retrieved
type ScraperConfig struct {
	Mode               string  `mapstructure:"mode" validate:"required,fetchmode"`
	Headless           bool    `mapstructure:"headless"`
	UserAgent          string  `mapstructure:"user_agent"`
	PageTimeoutSeconds int     `mapstructure:"page_timeout_seconds" validate:"required,gt=0"`
	SettleDelayMS      int     `mapstructure:"settle_delay_ms" validate:"gte=0"`
	MaxConcurrentSites int     `mapstructure:"max_concurrent_sites" validate:"required,gt=0"`
	RateLimit          float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0"`
}

// OddsConfig bounds the odd values accepted from pages
type OddsConfig struct {
	Min float64 `mapstructure:"min" validate:"required,gt=1"`
	Max float64 `mapstructure:"max" validate:"required,gt=1"`
}

// AlignmentConfig selects the match name similarity scorer
type AlignmentConfig struct {
	Scorer string `mapstructure:"scorer" validate:"omitempty,scorer"`
}

// BettingConfig holds the stake to distribute
type BettingConfig struct {
	TotalAmount float64 `mapstructure:"total_amount" validate:"required,gt=0"`
}

// LeagueConfig lists the bookmaker pages of one league
type LeagueConfig struct {
	StartIndex int          `mapstructure:"start_index" validate:"gte=0"`
	EndIndex   int          `mapstructure:"end_index" validate:"gte=0"`
	Sites      []SiteConfig `mapstructure:"sites" validate:"required,dive"`
}

// SiteConfig describes where the matches and odds live on a bookmaker page
type SiteConfig struct {
	Name           string `mapstructure:"name" validate:"required"`
	URL            string `mapstructure:"url" validate:"required,url"`
	ContainerClass string `mapstructure:"container_class" validate:"required"`
	MatchClass     string `mapstructure:"match_class" validate:"required"`
	OddsClass      string `mapstructure:"odds_class" validate:"required"`
	WaitSelector   string `mapstructure:"wait_selector"`
}

// WatchConfig represents the scheduled scanning configuration
type WatchConfig struct {
	Schedule             string   `mapstructure:"schedule"`
	AlertCooldownMinutes int      `mapstructure:"alert_cooldown_minutes" validate:"gte=0"`
	MinMargin            float64  `mapstructure:"min_margin" validate:"gte=0,lt=1"`
	HTTPPort             int      `mapstructure:"http_port" validate:"omitempty,min=1,max=65535"`
	CORSOrigins          []string `mapstructure:"cors_origins"`
}

// NotifyConfig configures where watch-mode alerts are delivered
type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig holds the Telegram bot credentials
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging returns true if running in staging environment
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// League returns the configuration of the named league. Names are matched
// case-insensitively since viper lowercases map keys.
func (c *Config) League(name string) (LeagueConfig, error) {
	league, ok := c.Leagues[strings.ToLower(name)]
	if !ok {
		return LeagueConfig{}, fmt.Errorf("league %q is not configured", name)
	}
	return league, nil
}

// ActiveLeague returns the selected league's configuration.
func (c *Config) ActiveLeague() (LeagueConfig, error) {
	return c.League(c.SelectedLeague)
}

// PageTimeout returns the per-page retrieval timeout.
func (c *ScraperConfig) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSeconds) * time.Second
}

// SettleDelay returns how long to wait after a page is ready before reading it.
func (c *ScraperConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// AlertCooldown returns the window during which a repeated opportunity is not
// alerted again.
func (c *WatchConfig) AlertCooldown() time.Duration {
	return time.Duration(c.AlertCooldownMinutes) * time.Minute
}

// GetMetricsAddr returns the listen address of the watch HTTP surface.
func (c *Config) GetMetricsAddr() string {
	return fmt.Sprintf(":%d", c.Watch.HTTPPort)
}
