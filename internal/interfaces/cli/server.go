package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/reset-timer/internal/application/scheduler"
	"github.com/example/reset-timer/internal/infrastructure/catalog"
	"github.com/example/reset-timer/internal/infrastructure/config"
	"github.com/example/reset-timer/internal/infrastructure/logging"
	"github.com/example/reset-timer/internal/interfaces/web"
)

func newServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the countdown pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			format := cfg.LogFormat
			if cfg.DevMode {
				format = "console"
			}
			log, err := logging.New(cfg.LogLevel, format, os.Stdout)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			srv, holder, err := web.FromConfig(cfg, log)
			if err != nil {
				return err
			}

			sched := &scheduler.Scheduler{
				Games: holder,
				Log:   log.With().Str("component", "scheduler").Logger(),
			}
			go func() { _ = sched.Run(ctx) }()

			if cfg.WatchGames {
				w := &catalog.Watcher{
					Path:        cfg.GamesFile,
					DefaultSlug: cfg.DefaultGame,
					Holder:      holder,
					Log:         log.With().Str("component", "games-watch").Logger(),
					OnReload:    sched.Reload,
				}
				go func() {
					if err := w.Run(ctx); err != nil {
						log.Error().Err(err).Msg("games watcher stopped")
					}
				}()
			}

			return web.Start(ctx, cfg.HTTPAddr, srv.Routes(), log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
