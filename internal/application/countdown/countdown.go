package countdown

import (
	"fmt"
	"time"

	"github.com/example/reset-timer/internal/domain/game"
	"github.com/example/reset-timer/internal/domain/reset"
	"github.com/example/reset-timer/internal/internaltypes"
)

// CatalogSource hands out the catalog to use for one request.
type CatalogSource interface {
	Catalog() *game.Catalog
}

type staticSource struct{ c *game.Catalog }

func (s staticSource) Catalog() *game.Catalog { return s.c }

// Static wraps a catalog that never changes.
func Static(c *game.Catalog) CatalogSource { return staticSource{c: c} }

// View is everything a page or API response needs for one game at one instant.
type View struct {
	Game          game.Game
	Now           time.Time
	NextReset     time.Time
	Remaining     reset.Countdown
	CountdownText string
	Title         string
	Description   string
}

type Service struct {
	Games CatalogSource
	Clock Clock
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

// ForPath resolves the game from a request path; unknown paths get the default game.
func (s Service) ForPath(path string) View {
	return s.build(s.Games.Catalog().Resolve(path), s.now())
}

// Match is ForPath without the fallback: ok is false when no game owns the path.
func (s Service) Match(path string) (View, bool) {
	g, ok := s.Games.Catalog().Match(path)
	if !ok {
		return View{}, false
	}
	return s.build(g, s.now()), true
}

func (s Service) ForSlug(slug string) (View, error) {
	g, ok := s.Games.Catalog().Lookup(slug)
	if !ok {
		return View{}, fmt.Errorf("game %q: %w", slug, internaltypes.ErrNotFound)
	}
	return s.build(g, s.now()), nil
}

// Default is the view for the catalog's default game.
func (s Service) Default() View {
	return s.build(s.Games.Catalog().Default(), s.now())
}

// All returns one view per game, in catalog order, computed at the same instant.
func (s Service) All() []View {
	now := s.now()
	games := s.Games.Catalog().All()
	out := make([]View, 0, len(games))
	for _, g := range games {
		out = append(out, s.build(g, now))
	}
	return out
}

// At computes a view for g at an explicit instant.
func At(g game.Game, now time.Time) View {
	return Service{}.build(g, now.UTC())
}

func (s Service) build(g game.Game, now time.Time) View {
	next := reset.NextOccurrence(g.Rule, now)
	left := reset.Remaining(next, now)
	text := left.Text()
	return View{
		Game:          g,
		Now:           now,
		NextReset:     next,
		Remaining:     left,
		CountdownText: text,
		Title:         g.Title(),
		Description:   "Next reset in: " + text,
	}
}
