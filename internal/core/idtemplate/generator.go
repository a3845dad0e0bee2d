package idtemplate

import (
	"sync"
	"time"
)

// Clock supplies the current time
type Clock func() time.Time

// Generator mints identifiers against an injected clock and keeps parsed
// templates per distinct pattern. Safe for concurrent use
type Generator struct {
	now Clock

	mu    sync.RWMutex
	cache map[string]Template
}

// NewGenerator returns a Generator reading time from now; nil means time.Now
func NewGenerator(now Clock) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now, cache: map[string]Template{}}
}

// Template returns the parsed pattern, parsing it on first use
func (g *Generator) Template(pattern string) Template {
	g.mu.RLock()
	t, ok := g.cache[pattern]
	g.mu.RUnlock()
	if ok {
		return t
	}
	t = Parse(pattern)
	g.mu.Lock()
	g.cache[pattern] = t
	g.mu.Unlock()
	return t
}

// Next mints the identifier after previous; an empty previous starts from the pattern
func (g *Generator) Next(previous, pattern string) string {
	if previous == "" {
		previous = pattern
	}
	return g.Template(pattern).Next(previous, g.now())
}

// Now reports the generator's clock
func (g *Generator) Now() time.Time { return g.now() }
