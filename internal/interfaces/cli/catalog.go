package cli

import (
	"github.com/example/reset-timer/internal/domain/game"
	"github.com/example/reset-timer/internal/infrastructure/catalog"
	"github.com/example/reset-timer/internal/infrastructure/config"
)

// loadCatalog returns the table the server would serve. An explicit --games
// file wins; otherwise GAMES_FILE and DEFAULT_GAME come from the environment
// and .env, and with neither set it is the built-in table.
func loadCatalog(gamesFile string) (*game.Catalog, error) {
	if gamesFile != "" {
		return catalog.Load(gamesFile, "")
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.GamesFile, cfg.DefaultGame)
}
