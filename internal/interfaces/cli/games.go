package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/reset-timer/internal/infrastructure/catalog"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Inspect the game table",
	}
	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesValidateCmd())
	return cmd
}

func newGamesListCmd() *cobra.Command {
	var gamesFile string
	c := &cobra.Command{
		Use:   "list",
		Short: "List configured games",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(gamesFile)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tRESET\tCRON\tDEFAULT\t")
			def := cat.Default().Slug
			for _, g := range cat.All() {
				mark := ""
				if g.Slug == def {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", g.Slug, g.Name, g.Rule, g.Rule.Cron(), mark)
			}
			return tw.Flush()
		},
	}
	c.Flags().StringVar(&gamesFile, "games", "", "games YAML file (GAMES_FILE, then the built-in table, when empty)")
	return c
}

func newGamesValidateCmd() *cobra.Command {
	var gamesFile string
	c := &cobra.Command{
		Use:   "validate",
		Short: "Check a games file without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(gamesFile, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d games, default %s)\n", gamesFile, cat.Len(), cat.Default().Slug)
			return nil
		},
	}
	c.Flags().StringVar(&gamesFile, "file", "", "games YAML file")
	_ = c.MarkFlagRequired("file")
	return c
}
