package game

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/example/reset-timer/internal/domain/reset"
	"github.com/example/reset-timer/internal/internaltypes"
)

// Game is one countdown page: a reset rule plus what the page shows for it.
type Game struct {
	Slug        string
	Name        string
	FullName    string
	Description string
	Color       string

	Rule reset.RecurrenceRule
}

var (
	slugRe  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func (g Game) Validate() error {
	if !slugRe.MatchString(g.Slug) {
		return fmt.Errorf("slug %q must match %s", g.Slug, slugRe)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%s: name required", g.Slug)
	}
	if !colorRe.MatchString(g.Color) {
		return fmt.Errorf("%s: color %q must be #rrggbb", g.Slug, g.Color)
	}
	if err := g.Rule.Validate(); err != nil {
		return fmt.Errorf("%s: %w", g.Slug, err)
	}
	return nil
}

// Path is the page URL path for the game.
func (g Game) Path() string {
	return "/" + g.Slug
}

// Title is used for <title> and the preview title.
func (g Game) Title() string {
	return strings.TrimSpace(g.Name + " " + g.Description)
}

// DisplayName prefers FullName for headings.
func (g Game) DisplayName() string {
	if g.FullName != "" {
		return g.FullName
	}
	return g.Name
}

// Builtin returns the catalog served when no games file is configured.
func Builtin() *Catalog {
	c, err := NewCatalog("cs2",
		Game{
			Slug:        "cs2",
			Name:        "CS2",
			FullName:    "Counter-Strike 2",
			Description: "Weekly Drop Reset Timer",
			Color:       "#ce8c2c",
			Rule:        reset.RecurrenceRule{Weekday: time.Wednesday, Hour: 1, Minute: 0},
		},
		Game{
			Slug:        "valorant",
			Name:        "Valorant",
			FullName:    "Valorant",
			Description: "Weekly Reset Timer",
			Color:       "#ff4655",
			Rule:        reset.RecurrenceRule{Weekday: time.Tuesday, Hour: 0, Minute: 0},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// wrapCatalogErr tags validation failures so callers can tell a bad table from I/O errors.
func wrapCatalogErr(err error) error {
	return fmt.Errorf("%w: %w", internaltypes.ErrInvalidCatalog, err)
}
