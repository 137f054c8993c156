package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/best-odds/internal/config"
	"github.com/yourusername/best-odds/internal/models"
)

// PageSource yields the raw match and odds fragments of a bookmaker page.
type PageSource interface {
	// Fetch retrieves and extracts one site's page
	Fetch(ctx context.Context, site config.SiteConfig) (models.RawSite, error)

	// Name returns the retrieval mode of the source
	Name() string

	// Close releases the underlying browser or connections
	Close() error
}

// HTMLFetcher retrieves the markup of a page.
type HTMLFetcher interface {
	FetchHTML(ctx context.Context, site config.SiteConfig) (string, error)
	Mode() string
	Close() error
}

// DataSourceError represents errors from page retrieval
type DataSourceError struct {
	Source  string // Site name
	Code    string // Error code (e.g., "timeout")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNetworkError = "network_error"
	ErrCodeTimeout      = "timeout"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeBrowserError = "browser_error"
	ErrCodeNotFound     = "not_found"
	ErrCodeServerError  = "server_error"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("page not found")
	ErrNoContainers   = errors.New("no match containers on page")
	ErrCircuitOpen    = errors.New("circuit breaker open")
	ErrSessionClosed  = errors.New("browser session closed")
	ErrUnexpectedPage = errors.New("unexpected page response")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode returns the code of a DataSourceError in err's chain, or
// "unknown".
func ErrorCode(err error) string {
	var dsErr DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return "unknown"
}

// errorCodeFor classifies a retrieval failure.
func errorCodeFor(ctx context.Context, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrCodeTimeout
	}
	return ErrCodeNetworkError
}
