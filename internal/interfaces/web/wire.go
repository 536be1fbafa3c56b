package web

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/example/reset-timer/internal/application/countdown"
	"github.com/example/reset-timer/internal/infrastructure/catalog"
	"github.com/example/reset-timer/internal/infrastructure/config"
	"github.com/example/reset-timer/internal/infrastructure/crawler"
)

// FromConfig assembles a Server from configuration. The returned holder is the
// catalog the server reads, so callers can attach a catalog.Watcher to it.
func FromConfig(cfg config.Config, log zerolog.Logger) (*Server, *catalog.Holder, error) {
	games, err := catalog.Load(cfg.GamesFile, cfg.DefaultGame)
	if err != nil {
		return nil, nil, err
	}
	holder := catalog.NewHolder(games)

	detector, err := crawler.NewRegexp(cfg.CrawlerPattern)
	if err != nil {
		return nil, nil, err
	}
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, nil, fmt.Errorf("templates: %w", err)
	}

	s := &Server{
		Countdown: countdown.Service{Games: holder, Clock: countdown.SystemClock{}},
		Crawlers:  detector,
		Templates: tmpl,
		Log:       log,
		BaseURL:   cfg.BaseURL,
	}
	if cfg.CookiesEnabled() {
		s.Preferences = NewPreferences(cfg.CookieHashKey, cfg.CookieBlockKey)
	}
	if cfg.RateLimitRPS > 0 {
		s.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	log.Info().
		Int("games", games.Len()).
		Str("default", games.Default().Slug).
		Bool("cookies", s.Preferences != nil).
		Bool("rate_limit", s.Limiter != nil).
		Msg("web server configured")
	return s, holder, nil
}
