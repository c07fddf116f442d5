package alert

import (
	"time"

	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

// clearInterval is how long a cache generation lives before the next lookup
// drops the whole map.
const clearInterval = 5 * time.Minute

// Cache memoizes alert results keyed by day and platoon letter. Misses are
// cached as nil entries so a quiet day is not recomputed on every render.
// There is no per-entry eviction; the entire map is cleared wholesale once
// the interval since the last clear elapses.
type Cache struct {
	entries   map[string]*Info
	lastClear time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries:   make(map[string]*Info),
		lastClear: time.Now(),
	}
}

func cacheKey(day time.Time, p rotation.Platoon) string {
	return utils.FormatDate(day) + "|" + string(p)
}

// Get reports the cached result for the day and platoon. The second return
// distinguishes a cached "no alert" from an absent entry.
func (c *Cache) Get(day time.Time, p rotation.Platoon) (*Info, bool) {
	info, ok := c.entries[cacheKey(day, p)]
	return info, ok
}

// Put stores a result, nil included.
func (c *Cache) Put(day time.Time, p rotation.Platoon, info *Info) {
	c.entries[cacheKey(day, p)] = info
}

// ClearIfStale drops every entry when the clear interval has elapsed since
// the last clear. Callers pass the wall clock; tests pass whatever they like.
func (c *Cache) ClearIfStale(now time.Time) {
	if now.Sub(c.lastClear) < clearInterval {
		return
	}
	c.entries = make(map[string]*Info)
	c.lastClear = now
}
