package datasource

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/best-odds/internal/config"
	"golang.org/x/time/rate"
)

// BrowserOptions configures the headless browser used to render pages.
type BrowserOptions struct {
	Headless    bool
	UserAgent   string
	PageTimeout time.Duration
	SettleDelay time.Duration
	RateLimit   float64
}

// BrowserOptionsFrom derives browser settings from the scraper section.
func BrowserOptionsFrom(cfg config.ScraperConfig) BrowserOptions {
	return BrowserOptions{
		Headless:    cfg.Headless,
		UserAgent:   cfg.UserAgent,
		PageTimeout: cfg.PageTimeout(),
		SettleDelay: cfg.SettleDelay(),
		RateLimit:   cfg.RateLimit,
	}
}

// allocatorOptions returns the Chrome flags for opts.
func (o BrowserOptions) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
	)
	if o.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(o.UserAgent))
	}
	return opts
}

// BrowserSession owns one Chrome process for a scan. Each fetch renders its
// page in a separate tab, so sites can be fetched concurrently.
type BrowserSession struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	limiter *rate.Limiter
	timeout time.Duration
	settle  time.Duration
	logger  *logrus.Entry

	mu     sync.Mutex
	closed bool
}

// NewBrowserSession launches the browser. Close must be called to release it.
func NewBrowserSession(opts BrowserOptions, logger *logrus.Logger) (*BrowserSession, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	entry := logger.WithField("component", "browser")

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts.allocatorOptions()...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(entry.Debugf))

	// An empty run starts the browser so launch failures surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, NewDataSourceError("browser", ErrCodeBrowserError, "failed to launch browser", err)
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	entry.WithField("headless", opts.Headless).Debug("Browser session started")

	return &BrowserSession{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		limiter:       rate.NewLimiter(limit, 1),
		timeout:       opts.PageTimeout,
		settle:        opts.SettleDelay,
		logger:        entry,
	}, nil
}

// FetchHTML opens the site in a new tab, waits for it to render and returns
// the document markup.
func (s *BrowserSession) FetchHTML(ctx context.Context, site config.SiteConfig) (string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", NewDataSourceError(site.Name, ErrCodeBrowserError, "session closed", ErrSessionClosed)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", NewDataSourceError(site.Name, errorCodeFor(ctx, err), "rate limiter", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if s.timeout > 0 {
		var cancelTimeout context.CancelFunc
		tabCtx, cancelTimeout = context.WithTimeout(tabCtx, s.timeout)
		defer cancelTimeout()
	}

	waitFor := site.WaitSelector
	if waitFor == "" {
		waitFor = "body"
	}

	var markup string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(site.URL),
		chromedp.WaitReady(waitFor, chromedp.ByQuery),
		chromedp.Sleep(s.settle),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	)
	if err != nil {
		code := ErrCodeBrowserError
		if tabCtx.Err() != nil {
			code = errorCodeFor(tabCtx, err)
		}
		return "", NewDataSourceError(site.Name, code, "failed to render "+site.URL, err)
	}

	s.logger.WithFields(logrus.Fields{
		"site":  site.Name,
		"bytes": len(markup),
	}).Debug("Page rendered")

	return markup, nil
}

// Mode returns the fetch mode name.
func (s *BrowserSession) Mode() string {
	return "browser"
}

// Close shuts the browser down. It is safe to call more than once.
func (s *BrowserSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	err := chromedp.Cancel(s.browserCtx)
	s.browserCancel()
	s.allocCancel()
	return err
}
