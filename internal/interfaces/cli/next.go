package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/reset-timer/internal/application/countdown"
	"github.com/example/reset-timer/internal/domain/game"
)

type nextOutput struct {
	Game      string    `json:"game"`
	Rule      string    `json:"rule"`
	NextReset time.Time `json:"next_reset"`
	Remaining string    `json:"remaining"`
	Seconds   int64     `json:"remaining_seconds"`
}

func newNextCmd() *cobra.Command {
	var (
		gamesFile string
		at        string
		asJSON    bool
	)

	c := &cobra.Command{
		Use:   "next [game...]",
		Short: "Print the next reset for each game",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(gamesFile)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			if at != "" {
				now, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at (want RFC3339): %w", err)
				}
			}

			games, err := selectGames(cat, args)
			if err != nil {
				return err
			}
			views := make([]countdown.View, 0, len(games))
			for _, g := range games {
				views = append(views, countdown.At(g, now))
			}

			if asJSON {
				return writeNextJSON(cmd.OutOrStdout(), views)
			}
			return writeNextTable(cmd.OutOrStdout(), views)
		},
	}

	c.Flags().StringVar(&gamesFile, "games", "", "games YAML file (GAMES_FILE, then the built-in table, when empty)")
	c.Flags().StringVar(&at, "at", "", "compute as of this RFC3339 instant instead of now")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func selectGames(cat *game.Catalog, slugs []string) ([]game.Game, error) {
	if len(slugs) == 0 {
		return cat.All(), nil
	}
	out := make([]game.Game, 0, len(slugs))
	for _, s := range slugs {
		g, ok := cat.Lookup(s)
		if !ok {
			return nil, fmt.Errorf("unknown game %q", s)
		}
		out = append(out, g)
	}
	return out, nil
}

func writeNextJSON(w io.Writer, views []countdown.View) error {
	out := make([]nextOutput, 0, len(views))
	for _, v := range views {
		out = append(out, nextOutput{
			Game:      v.Game.Slug,
			Rule:      v.Game.Rule.String(),
			NextReset: v.NextReset,
			Remaining: v.CountdownText,
			Seconds:   int64(v.Remaining.Total() / time.Second),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeNextTable(w io.Writer, views []countdown.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GAME\tNEXT RESET (UTC)\tIN\t")
	for _, v := range views {
		in := v.CountdownText + " (" + humanize.RelTime(v.NextReset, v.Now, "ago", "from now") + ")"
		// under a second left
		if v.Remaining.IsZero() {
			in = "now"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", v.Game.Slug, v.NextReset.Format("Mon 2006-01-02 15:04"), in)
	}
	return tw.Flush()
}
