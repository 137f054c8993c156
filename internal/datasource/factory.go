package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/best-odds/internal/config"
)

// Fetch modes
const (
	ModeBrowser = "browser"
	ModeHTTP    = "http"
)

// NewPageSource creates the PageSource for the configured fetch mode. The
// browser mode launches Chrome immediately; callers must Close the source.
func NewPageSource(cfg config.ScraperConfig, logger *logrus.Logger) (PageSource, error) {
	fetcher, err := NewFetcher(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewScraper(fetcher, logger), nil
}

// NewFetcher creates the HTMLFetcher for the configured fetch mode.
func NewFetcher(cfg config.ScraperConfig, logger *logrus.Logger) (HTMLFetcher, error) {
	switch cfg.Mode {
	case ModeBrowser, "":
		return NewBrowserSession(BrowserOptionsFrom(cfg), logger)
	case ModeHTTP:
		return NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg), logger), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", cfg.Mode)
	}
}
