package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/example/reset-timer/internal/domain/game"
	"github.com/example/reset-timer/internal/domain/reset"
	"github.com/example/reset-timer/internal/internaltypes"
)

type fileSchema struct {
	Default string       `yaml:"default"`
	Games   []gameSchema `yaml:"games"`
}

type gameSchema struct {
	Slug        string      `yaml:"slug"`
	Name        string      `yaml:"name"`
	FullName    string      `yaml:"full_name"`
	Description string      `yaml:"description"`
	Color       string      `yaml:"color"`
	Reset       *ruleSchema `yaml:"reset"`
	Cron        string      `yaml:"cron"`
}

type ruleSchema struct {
	Weekday string `yaml:"weekday"` // 0-6 or a day name
	Hour    int    `yaml:"hour"`
	Minute  int    `yaml:"minute"`
}

// Load reads a games file. An empty path yields the built-in catalog.
// defaultSlug, when set, overrides the file's default.
func Load(path, defaultSlug string) (*game.Catalog, error) {
	if path == "" {
		c := game.Builtin()
		if defaultSlug == "" {
			return c, nil
		}
		return c.WithDefault(defaultSlug)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games file: %w", err)
	}
	c, err := Parse(b, defaultSlug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML games table. Unknown keys are rejected.
func Parse(data []byte, defaultSlug string) (*game.Catalog, error) {
	var f fileSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty games file", internaltypes.ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: yaml: %v", internaltypes.ErrInvalidCatalog, err)
	}

	games := make([]game.Game, 0, len(f.Games))
	for i, gs := range f.Games {
		g, err := gs.toGame()
		if err != nil {
			return nil, fmt.Errorf("%w: games[%d]: %w", internaltypes.ErrInvalidCatalog, i, err)
		}
		games = append(games, g)
	}

	if defaultSlug == "" {
		defaultSlug = f.Default
	}
	return game.NewCatalog(defaultSlug, games...)
}

func (gs gameSchema) toGame() (game.Game, error) {
	g := game.Game{
		Slug:        strings.ToLower(strings.TrimSpace(gs.Slug)),
		Name:        strings.TrimSpace(gs.Name),
		FullName:    strings.TrimSpace(gs.FullName),
		Description: strings.TrimSpace(gs.Description),
		Color:       strings.TrimSpace(gs.Color),
	}
	switch {
	case gs.Reset != nil && gs.Cron != "":
		return g, fmt.Errorf("%s: set either reset or cron, not both", g.Slug)
	case gs.Cron != "":
		r, err := reset.ParseCron(gs.Cron)
		if err != nil {
			return g, fmt.Errorf("%s: %w", g.Slug, err)
		}
		g.Rule = r
	case gs.Reset != nil:
		wd, err := reset.ParseWeekday(gs.Reset.Weekday)
		if err != nil {
			return g, fmt.Errorf("%s: %w", g.Slug, err)
		}
		g.Rule = reset.RecurrenceRule{Weekday: wd, Hour: gs.Reset.Hour, Minute: gs.Reset.Minute}
	default:
		return g, fmt.Errorf("%s: reset or cron required", g.Slug)
	}
	return g, nil
}
