package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	invalidConfigPath            = "testdata/invalid_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedNonNilConfig         = "expected non-nil config"
	bestOddsName                 = "best-odds"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	premierLeague                = "premier_league"
	testAppName                  = "test-app"
	testSiteHost                 = "TEST_SITE_HOST"
	testTotalAmount              = "TEST_TOTAL_AMOUNT"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != bestOddsName {
		t.Errorf("expected app name '%s', got '%s'", bestOddsName, cfg.App.Name)
	}

	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}

	if cfg.SelectedLeague != premierLeague {
		t.Errorf("expected selected league '%s', got '%s'", premierLeague, cfg.SelectedLeague)
	}

	league, err := cfg.ActiveLeague()
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if len(league.Sites) != 3 {
		t.Fatalf("expected 3 sites, got %d", len(league.Sites))
	}
	if league.Sites[0].WaitSelector != ".event-list" {
		t.Errorf("expected wait selector '.event-list', got '%s'", league.Sites[0].WaitSelector)
	}

	if cfg.Betting.TotalAmount != 600 {
		t.Errorf("expected total amount 600, got %v", cfg.Betting.TotalAmount)
	}

	if len(cfg.Watch.CORSOrigins) != 1 || cfg.Watch.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("expected one CORS origin, got %v", cfg.Watch.CORSOrigins)
	}
	if cfg.Notify.Telegram.Enabled {
		t.Error("expected telegram notifications disabled")
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("BEST_ODDS_APP_NAME", testAppName)
	t.Setenv("BEST_ODDS_BETTING_TOTAL_AMOUNT", "250")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}

	if cfg.Betting.TotalAmount != 250 {
		t.Errorf("expected total amount 250 from environment, got %v", cfg.Betting.TotalAmount)
	}
}

// TestLoadConfigDefaults tests defaults for omitted optional sections
func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(testSiteHost, "alpha.example.com")
	t.Setenv(testTotalAmount, "100")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Scraper.Mode != "browser" {
		t.Errorf("expected default scraper mode 'browser', got '%s'", cfg.Scraper.Mode)
	}
	if cfg.Scraper.SettleDelay() != 5*time.Second {
		t.Errorf("expected default settle delay 5s, got %v", cfg.Scraper.SettleDelay())
	}
	if cfg.Odds.Min != 1.01 || cfg.Odds.Max != 20.0 {
		t.Errorf("expected default odds range [1.01, 20], got [%v, %v]", cfg.Odds.Min, cfg.Odds.Max)
	}
	if cfg.Alignment.Scorer != "levenshtein" {
		t.Errorf("expected default scorer 'levenshtein', got '%s'", cfg.Alignment.Scorer)
	}
	if cfg.Watch.AlertCooldown() != 30*time.Minute {
		t.Errorf("expected default cooldown 30m, got %v", cfg.Watch.AlertCooldown())
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests environment variable expansion in config file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv(testSiteHost, "odds.internal")
	t.Setenv(testTotalAmount, "1200")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}

	league, err := cfg.League("Bundesliga")
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if league.Sites[0].URL != "https://odds.internal/football/germany" {
		t.Errorf("expected expanded URL, got '%s'", league.Sites[0].URL)
	}
	if cfg.Betting.TotalAmount != 1200 {
		t.Errorf("expected expanded total amount 1200, got %v", cfg.Betting.TotalAmount)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	err = Validate(cfg)
	if err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidFile tests that every tag violation is reported
func TestValidateInvalidFile(t *testing.T) {
	cfg, err := Load(invalidConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	for _, want := range []string{"Environment", "LogLevel", "Mode", "TotalAmount", "URL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error mentioning %s, got: %v", want, err)
		}
	}
}

// TestValidateCrossField tests rules spanning several fields
func TestValidateCrossField(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "invalid environment",
			mutate:  func(cfg *Config) { cfg.App.Environment = invalidEnv },
			wantErr: "Environment",
		},
		{
			name:    "unknown selected league",
			mutate:  func(cfg *Config) { cfg.SelectedLeague = "eredivisie" },
			wantErr: "not configured",
		},
		{
			name:    "selected league without three sites",
			mutate:  func(cfg *Config) { cfg.SelectedLeague = "serie_a" },
			wantErr: "exactly 3 sites",
		},
		{
			name:    "inverted odds range",
			mutate:  func(cfg *Config) { cfg.Odds.Min, cfg.Odds.Max = 10, 5 },
			wantErr: "odds.min",
		},
		{
			name: "end index before start index",
			mutate: func(cfg *Config) {
				l := cfg.Leagues[premierLeague]
				l.StartIndex, l.EndIndex = 5, 3
				cfg.Leagues[premierLeague] = l
			},
			wantErr: "end_index",
		},
		{
			name:    "bad schedule",
			mutate:  func(cfg *Config) { cfg.Watch.Schedule = "every five minutes" },
			wantErr: "watch.schedule",
		},
		{
			name:    "unknown scorer",
			mutate:  func(cfg *Config) { cfg.Alignment.Scorer = "jaccard" },
			wantErr: "Scorer",
		},
		{
			name:    "telegram without token",
			mutate:  func(cfg *Config) { cfg.Notify.Telegram = TelegramConfig{Enabled: true, ChatID: 42} },
			wantErr: "notify.telegram",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(validConfigPath)
			if err != nil {
				t.Fatalf(expectedNoErrorLoadingConfig, err)
			}

			tt.mutate(cfg)
			err = Validate(cfg)
			if err == nil {
				t.Fatalf("expected validation error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestIsDevelopment tests environment check function
func TestIsDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: developmentEnv},
	}

	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false")
	}
}

// TestIsProduction tests production environment check
func TestIsProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
	}

	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	if cfg.IsStaging() {
		t.Error("expected IsStaging() to return false")
	}
}

// TestLoadDotEnv tests .env loading
func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BEST_ODDS_DOTENV_PROBE=loaded\n"), 0o600); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	t.Cleanup(func() { os.Unsetenv("BEST_ODDS_DOTENV_PROBE") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if got := os.Getenv("BEST_ODDS_DOTENV_PROBE"); got != "loaded" {
		t.Errorf("expected variable from .env, got %q", got)
	}
}
