package handler

import (
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/example/reset-timer/internal/infrastructure/config"
	"github.com/example/reset-timer/internal/infrastructure/logging"
	"github.com/example/reset-timer/internal/interfaces/web"
)

var (
	once   sync.Once
	routes http.Handler
)

// bootLog reports setup failures that happen before the configured logger exists.
var bootLog = zerolog.New(os.Stderr).With().Timestamp().Str("component", "serverless").Logger()

func setup() (http.Handler, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return nil, err
	}
	srv, _, err := web.FromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	return srv.Routes(), nil
}

// unavailable answers every request with a bare 500. The cause stays in the
// logs; it can name key files and patterns.
func unavailable(err error) http.Handler {
	bootLog.Error().Err(err).Msg("serverless setup failed")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusInternalServerError)
	})
}

// Handler is the entry point for Vercel's Go runtime. vercel.json rewrites
// every path here; routing happens inside.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		h, err := setup()
		if err != nil {
			h = unavailable(err)
		}
		routes = h
	})
	routes.ServeHTTP(w, r)
}
