package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/example/reset-timer/internal/application/countdown"
	"github.com/example/reset-timer/internal/domain/game"
)

// Scheduler fires once per game at each weekly reset and logs it. Each game's
// rule is the cron.Schedule, so the firing times are exactly what the pages
// count down to.
type Scheduler struct {
	Games countdown.CatalogSource
	Log   zerolog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	entries []cron.EntryID
}

// Run blocks until ctx is done, then waits for running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.cron = cron.New(cron.WithLocation(time.UTC))
	s.registerLocked()
	s.cron.Start()
	c := s.cron
	s.mu.Unlock()
	s.logUpcoming(c)

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

// Reload re-registers every game from the current catalog.
func (s *Scheduler) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return
	}
	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]
	s.registerLocked()
	s.logUpcoming(s.cron)
}

// Upcoming lists the next firing per registered game.
func (s *Scheduler) Upcoming() map[string]time.Time {
	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()
	return upcoming(c)
}

func upcoming(c *cron.Cron) map[string]time.Time {
	out := map[string]time.Time{}
	if c == nil {
		return out
	}
	for _, e := range c.Entries() {
		if j, ok := e.Job.(resetJob); ok {
			out[j.game.Slug] = e.Next
		}
	}
	return out
}

// logUpcoming reports the next reset per game, in catalog order.
func (s *Scheduler) logUpcoming(c *cron.Cron) {
	next := upcoming(c)
	for _, g := range s.Games.Catalog().All() {
		if at, ok := next[g.Slug]; ok {
			s.Log.Info().Str("game", g.Slug).Time("next", at).Msg("next reset")
		}
	}
}

func (s *Scheduler) registerLocked() {
	for _, g := range s.Games.Catalog().All() {
		id := s.cron.Schedule(g.Rule, resetJob{s: s, game: g})
		s.entries = append(s.entries, id)
		s.Log.Debug().Str("game", g.Slug).Str("rule", g.Rule.String()).Msg("reset scheduled")
	}
}

type resetJob struct {
	s    *Scheduler
	game game.Game
}

func (j resetJob) Run() {
	now := time.Now().UTC()
	j.s.Log.Info().
		Str("game", j.game.Slug).
		Str("rule", j.game.Rule.String()).
		Time("next", j.game.Rule.Next(now)).
		Msg("weekly reset")
}
