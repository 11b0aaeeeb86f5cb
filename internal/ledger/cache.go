package ledger

import "strings"

// Cache is the in-memory weight ledger for the current session: weights and
// notes by composite key, rebuilt from storage/remote on every week load.
// It never holds zero or negative weights. The cache itself is not locked;
// the sync engine is its single owner and serializes all access.
type Cache struct {
	weights map[Key]float64
	notes   map[Key]string

	// Entries rehydrated from records that predate exercise names in keys.
	// Read through MigrateLegacyRead, which promotes hits to canonical keys.
	legacy map[string]float64
}

func NewCache() *Cache {
	return &Cache{
		weights: make(map[Key]float64),
		notes:   make(map[Key]string),
		legacy:  make(map[string]float64),
	}
}

// Weight returns the cached weight for the key, if a positive weight was
// ever written for it.
func (c *Cache) Weight(k Key) (float64, bool) {
	w, ok := c.weights[k]
	return w, ok
}

// SetWeight stores a positive weight. Zero or negative removes the entry,
// keeping the cache sparse: "no weight" and "weight 0" are the same thing.
func (c *Cache) SetWeight(k Key, weight float64) {
	if weight <= 0 {
		delete(c.weights, k)
		return
	}
	c.weights[k] = weight
}

func (c *Cache) Note(k Key) (string, bool) {
	n, ok := c.notes[k]
	return n, ok
}

func (c *Cache) SetNote(k Key, note string) {
	if note == "" {
		delete(c.notes, k)
		return
	}
	c.notes[k] = note
}

// SetLegacyWeight stores a weight under a raw pre-migration key string.
// Used only when rehydrating records that cannot produce a canonical key.
func (c *Cache) SetLegacyWeight(raw string, weight float64) {
	if weight <= 0 {
		delete(c.legacy, raw)
		return
	}
	c.legacy[raw] = weight
}

// MigrateLegacyRead tries the given legacy key strings in order and, on the
// first hit, rewrites the value under the canonical key and drops the legacy
// entry. Migration happens on read, so old data heals itself as it is used.
func (c *Cache) MigrateLegacyRead(canonical Key, candidates []string) (float64, bool) {
	if w, ok := c.weights[canonical]; ok {
		return w, true
	}
	for _, raw := range candidates {
		if w, ok := c.legacy[raw]; ok {
			delete(c.legacy, raw)
			c.weights[canonical] = w
			return w, true
		}
	}
	return 0, false
}

// ClearWeek drops every entry belonging to the given week and nothing else.
// Reloading week W must never evict cached data of any other week.
func (c *Cache) ClearWeek(week string) {
	for k := range c.weights {
		if k.Week == week {
			delete(c.weights, k)
		}
	}
	for k := range c.notes {
		if k.Week == week {
			delete(c.notes, k)
		}
	}
	suffix := "-" + week
	for raw := range c.legacy {
		if strings.HasSuffix(raw, suffix) {
			delete(c.legacy, raw)
		}
	}
}

// WeekSize reports how many weight entries are cached for a week.
func (c *Cache) WeekSize(week string) int {
	n := 0
	for k := range c.weights {
		if k.Week == week {
			n++
		}
	}
	return n
}
