package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "resettimer",
		Short:         "Countdown pages for weekly game resets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServerCmd())
	cmd.AddCommand(newNextCmd())
	cmd.AddCommand(newGamesCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
