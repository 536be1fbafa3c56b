package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/example/reset-timer/internal/application/countdown"
	"github.com/example/reset-timer/internal/domain/reset"
	"github.com/example/reset-timer/internal/infrastructure/crawler"
	"github.com/example/reset-timer/internal/internaltypes"
)

const nextResetLayout = "Monday, January 2, 2006 at 15:04 UTC"

type Server struct {
	Countdown   countdown.Service
	Crawlers    crawler.Detector
	Preferences *Preferences // nil disables the preferred-game cookie
	Templates   *template.Template
	Limiter     *rate.Limiter // nil disables rate limiting
	Log         zerolog.Logger

	// BaseURL is used for og:url; the request host is used when empty.
	BaseURL string
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/games", s.handleAPIGames)
	mux.HandleFunc("GET /api/next-reset/{game}", s.handleAPINextReset)
	mux.HandleFunc("GET /", s.handlePage)

	var h http.Handler = mux
	h = s.rateLimit(h)
	h = s.accessLog(h)
	h = s.requestID(h)
	return h
}

func (s *Server) crawlers() crawler.Detector {
	if s.Crawlers == nil {
		return crawler.Never{}
	}
	return s.Crawlers
}

type gameLink struct {
	Slug   string
	Name   string
	Path   string
	Active bool
}

type pageData struct {
	View          countdown.View
	Games         []gameLink
	URL           string
	NextResetText string
	NowUnixMS     int64
	TargetUnixMS  int64
	Live          bool
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	v, matched := s.Countdown.Match(r.URL.Path)
	switch {
	case matched:
		if err := s.Preferences.Remember(w, v.Game.Slug); err != nil {
			log.Warn().Err(err).Msg("store preferred game")
		}
	case r.URL.Path == "/":
		v = s.Countdown.Default()
		if slug, ok := s.Preferences.Game(r); ok {
			if pv, err := s.Countdown.ForSlug(slug); err == nil {
				v = pv
			} else {
				s.Preferences.Clear(w)
			}
		}
	default:
		v = s.Countdown.Default()
	}

	data := pageData{
		View:          v,
		Games:         s.gameLinks(v.Game.Slug),
		URL:           s.pageURL(r),
		NextResetText: v.NextReset.Format(nextResetLayout),
		NowUnixMS:     v.Now.UnixMilli(),
		TargetUnixMS:  v.NextReset.UnixMilli(),
		Live:          !s.crawlers().IsCrawler(r.UserAgent()),
	}

	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	s.render(w, r, "countdown.html", data)
}

func (s *Server) gameLinks(active string) []gameLink {
	games := s.Countdown.Games.Catalog().All()
	out := make([]gameLink, 0, len(games))
	for _, g := range games {
		out = append(out, gameLink{Slug: g.Slug, Name: g.Name, Path: g.Path(), Active: g.Slug == active})
	}
	return out
}

func (s *Server) pageURL(r *http.Request) string {
	if s.BaseURL != "" {
		return strings.TrimRight(s.BaseURL, "/") + r.URL.Path
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + r.Host + r.URL.Path
}

type resetResponse struct {
	Game            string          `json:"game"`
	Name            string          `json:"name"`
	Rule            string          `json:"rule"`
	Cron            string          `json:"cron"`
	Now             time.Time       `json:"now"`
	NowUnixMS       int64           `json:"now_unix_ms"`
	NextReset       time.Time       `json:"next_reset"`
	NextResetUnixMS int64           `json:"next_reset_unix_ms"`
	NextResetText   string          `json:"next_reset_text"`
	Remaining       reset.Countdown `json:"remaining"`
	Countdown       string          `json:"countdown"`
}

func toResponse(v countdown.View) resetResponse {
	return resetResponse{
		Game:            v.Game.Slug,
		Name:            v.Game.Name,
		Rule:            v.Game.Rule.String(),
		Cron:            v.Game.Rule.Cron(),
		Now:             v.Now,
		NowUnixMS:       v.Now.UnixMilli(),
		NextReset:       v.NextReset,
		NextResetUnixMS: v.NextReset.UnixMilli(),
		NextResetText:   v.NextReset.Format(nextResetLayout),
		Remaining:       v.Remaining,
		Countdown:       v.CountdownText,
	}
}

func (s *Server) handleAPINextReset(w http.ResponseWriter, r *http.Request) {
	v, err := s.Countdown.ForSlug(r.PathValue("game"))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, internaltypes.ErrNotFound) {
			code = http.StatusNotFound
		}
		writeJSONErr(w, err, code)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(v))
}

func (s *Server) handleAPIGames(w http.ResponseWriter, r *http.Request) {
	views := s.Countdown.All()
	out := make([]resetResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONErr(w http.ResponseWriter, err error, code int) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.Templates.ExecuteTemplate(&buf, name, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Start serves h on addr until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", ln.Addr().String()).Msg("listening")
	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warn().Err(err).Msg("systemd notify failed")
	} else if ok {
		log.Debug().Msg("systemd notified ready")
	}

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
