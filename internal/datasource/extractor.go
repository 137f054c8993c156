package datasource

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yourusername/best-odds/internal/config"
	"github.com/yourusername/best-odds/internal/models"
)

// Extractor pulls match and odds fragments out of page markup using the
// class names configured for a site.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns one RawContainer per container element, in document order.
func (e *Extractor) Extract(markup string, site config.SiteConfig) ([]models.RawContainer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, NewDataSourceError(site.Name, ErrCodeInvalidData, "failed to parse page", err)
	}

	matchSel := classSelector(site.MatchClass)
	oddsSel := classSelector(site.OddsClass)

	var containers []models.RawContainer
	doc.Find(classSelector(site.ContainerClass)).Each(func(_ int, c *goquery.Selection) {
		var raw models.RawContainer

		c.Find(matchSel).Each(func(_ int, m *goquery.Selection) {
			raw.MatchTexts = append(raw.MatchTexts, VisibleText(m))
		})

		c.Find(oddsSel).Each(func(_ int, o *goquery.Selection) {
			raw.OddTexts = append(raw.OddTexts, VisibleText(o))
			inner, err := o.Html()
			if err != nil {
				inner = ""
			}
			raw.OddMarkup = append(raw.OddMarkup, inner)
		})

		containers = append(containers, raw)
	})

	if len(containers) == 0 {
		return nil, NewDataSourceError(site.Name, ErrCodeNotFound,
			fmt.Sprintf("no elements with class %q", site.ContainerClass), ErrNoContainers)
	}
	return containers, nil
}

// classSelector turns a class name as written in config into a CSS selector.
// Space separated names must all match; values that already look like a
// selector are used as is.
func classSelector(class string) string {
	class = strings.TrimSpace(class)
	if class == "" || strings.ContainsAny(class[:1], ".#[") {
		return class
	}
	return "." + strings.Join(strings.Fields(class), ".")
}
