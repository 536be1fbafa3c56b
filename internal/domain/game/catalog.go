package game

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, read-only table of games. Build it with NewCatalog;
// reloading configuration produces a new Catalog instead of changing one.
type Catalog struct {
	games       []Game
	bySlug      map[string]int
	defaultSlug string
}

// NewCatalog validates games and freezes them in the given order. An empty
// defaultSlug selects the first game.
func NewCatalog(defaultSlug string, games ...Game) (*Catalog, error) {
	if len(games) == 0 {
		return nil, wrapCatalogErr(fmt.Errorf("at least one game required"))
	}
	c := &Catalog{
		games:  make([]Game, len(games)),
		bySlug: make(map[string]int, len(games)),
	}
	copy(c.games, games)
	for i, g := range c.games {
		if err := g.Validate(); err != nil {
			return nil, wrapCatalogErr(err)
		}
		if _, dup := c.bySlug[g.Slug]; dup {
			return nil, wrapCatalogErr(fmt.Errorf("duplicate slug %q", g.Slug))
		}
		c.bySlug[g.Slug] = i
	}

	defaultSlug = strings.ToLower(strings.TrimSpace(defaultSlug))
	if defaultSlug == "" {
		defaultSlug = c.games[0].Slug
	}
	if _, ok := c.bySlug[defaultSlug]; !ok {
		return nil, wrapCatalogErr(fmt.Errorf("default game %q is not in the catalog", defaultSlug))
	}
	c.defaultSlug = defaultSlug
	return c, nil
}

func (c *Catalog) Lookup(slug string) (Game, bool) {
	i, ok := c.bySlug[strings.ToLower(slug)]
	if !ok {
		return Game{}, false
	}
	return c.games[i], true
}

// All returns the games in configuration order.
func (c *Catalog) All() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

func (c *Catalog) Default() Game {
	return c.games[c.bySlug[c.defaultSlug]]
}

func (c *Catalog) Len() int { return len(c.games) }

// Resolve picks the game for a request path: the deepest path segment that
// names a game. Anything else gets the default.
func (c *Catalog) Resolve(path string) Game {
	if g, ok := c.Match(path); ok {
		return g
	}
	return c.Default()
}

// Match is Resolve without the fallback.
func (c *Catalog) Match(path string) (Game, bool) {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if g, ok := c.Lookup(segments[i]); ok {
			return g, true
		}
	}
	return Game{}, false
}

// WithDefault returns a copy of c using a different default game.
func (c *Catalog) WithDefault(slug string) (*Catalog, error) {
	return NewCatalog(slug, c.games...)
}
