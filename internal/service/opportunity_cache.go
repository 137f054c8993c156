package service

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/best-odds/internal/models"
)

// OpportunityKey identifies an alerted opportunity: the same match priced the
// same way at the same sites.
type OpportunityKey struct {
	League  string
	Match   string
	Odds    models.OddsTriplet
	Sources [3]string
}

// String returns string representation of the key
func (k OpportunityKey) String() string {
	return fmt.Sprintf("%s|%s|%.2f/%.2f/%.2f|%s/%s/%s",
		k.League, k.Match, k.Odds[0], k.Odds[1], k.Odds[2], k.Sources[0], k.Sources[1], k.Sources[2])
}

// KeyFor builds the opportunity key of a scan result.
func KeyFor(result *models.ScanResult) OpportunityKey {
	return OpportunityKey{
		League: result.League,
		Match:  result.Selection.MatchName,
		Odds:   result.Selection.Odds,
		Sources: [3]string{
			result.SourceSite(models.HomeWin),
			result.SourceSite(models.Draw),
			result.SourceSite(models.AwayWin),
		},
	}
}

// OpportunityCache remembers alerted opportunities for a cooldown so the
// same sure bet is not reported on every scan.
type OpportunityCache struct {
	cache      *cache.Cache
	ttl        time.Duration
	mu         sync.Mutex
	suppressed uint64
	admitted   uint64
}

// NewOpportunityCache creates a cache with the given cooldown. A zero
// cooldown disables suppression.
func NewOpportunityCache(cooldown time.Duration) *OpportunityCache {
	cleanup := cooldown * 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &OpportunityCache{
		cache: cache.New(cooldown, cleanup),
		ttl:   cooldown,
	}
}

// ShouldAlert reports whether key may be alerted now and records it if so.
// When suppressed, it also returns how long the cooldown still lasts.
func (oc *OpportunityCache) ShouldAlert(key OpportunityKey) (bool, time.Duration) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if oc.ttl <= 0 {
		oc.admitted++
		return true, 0
	}

	k := key.String()
	if err := oc.cache.Add(k, time.Now(), oc.ttl); err == nil {
		oc.admitted++
		return true, 0
	}

	oc.suppressed++
	_, expires, found := oc.cache.GetWithExpiration(k)
	if !found || expires.IsZero() {
		return false, 0
	}
	return false, time.Until(expires)
}

// Forget drops key so the next occurrence alerts again.
func (oc *OpportunityCache) Forget(key OpportunityKey) {
	oc.cache.Delete(key.String())
}

// Len returns the number of opportunities in cooldown.
func (oc *OpportunityCache) Len() int {
	return oc.cache.ItemCount()
}

// Stats returns how many alerts were admitted and suppressed.
func (oc *OpportunityCache) Stats() (admitted, suppressed uint64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.admitted, oc.suppressed
}
