package datasource

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/best-odds/internal/config"
	"github.com/yourusername/best-odds/internal/metrics"
	"github.com/yourusername/best-odds/internal/models"
)

// Scraper is a PageSource that fetches markup and extracts its containers.
type Scraper struct {
	fetcher   HTMLFetcher
	extractor *Extractor
	logger    *logrus.Entry
}

// NewScraper creates a scraper over fetcher.
func NewScraper(fetcher HTMLFetcher, logger *logrus.Logger) *Scraper {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Scraper{
		fetcher:   fetcher,
		extractor: NewExtractor(),
		logger:    logger.WithField("component", "scraper"),
	}
}

// Fetch retrieves the site's page and extracts every container.
func (s *Scraper) Fetch(ctx context.Context, site config.SiteConfig) (models.RawSite, error) {
	start := time.Now()

	markup, err := s.fetcher.FetchHTML(ctx, site)
	if err != nil {
		metrics.RecordSiteFetchError(site.Name, ErrorCode(err))
		return models.RawSite{}, err
	}
	metrics.RecordSiteFetch(site.Name, s.fetcher.Mode(), time.Since(start).Seconds())

	containers, err := s.extractor.Extract(markup, site)
	if err != nil {
		metrics.RecordSiteFetchError(site.Name, ErrorCode(err))
		return models.RawSite{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"site":       site.Name,
		"containers": len(containers),
	}).Debug("Page extracted")

	return models.RawSite{
		Site:       site.Name,
		URL:        site.URL,
		Containers: containers,
		FetchedAt:  time.Now(),
	}, nil
}

// Name returns the fetch mode.
func (s *Scraper) Name() string {
	return s.fetcher.Mode()
}

// Close releases the fetcher.
func (s *Scraper) Close() error {
	return s.fetcher.Close()
}
