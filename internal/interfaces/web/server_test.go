package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/example/reset-timer/internal/application/countdown"
	"github.com/example/reset-timer/internal/domain/game"
	"github.com/example/reset-timer/internal/infrastructure/crawler"
)

var testNow = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tmpl, err := ParseTemplates()
	if err != nil {
		t.Fatal(err)
	}
	return &Server{
		Countdown: countdown.Service{Games: countdown.Static(game.Builtin()), Clock: countdown.FixedClock(testNow)},
		Crawlers:  crawler.Default(),
		Templates: tmpl,
		Log:       zerolog.Nop(),
		BaseURL:   "https://resets.example.com/",
	}
}

func get(t *testing.T, h http.Handler, path string, mod ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, m := range mod {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPage_Default(t *testing.T) {
	rec := get(t, newTestServer(t).Routes(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=0, must-revalidate" {
		t.Fatalf("unexpected cache control %q", cc)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("missing request id")
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<title>CS2 Weekly Drop Reset Timer</title>`,
		`<meta property="og:description" content="Next reset in: 2d 1h 0m">`,
		`<meta property="og:url" content="https://resets.example.com/">`,
		`<meta name="theme-color" content="#ce8c2c">`,
		`<h1>Counter-Strike 2</h1>`,
		`Every Wednesday at 01:00 GMT`,
		`Wednesday, January 3, 2024 at 01:00 UTC`,
		`<div class="time-value" id="days">2</div>`,
		`<div class="time-value" id="hours">01</div>`,
		`class="game-btn active">CS2</a>`,
		`<script>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestPage_SelectsGameByPath(t *testing.T) {
	rec := get(t, newTestServer(t).Routes(), "/valorant")
	body := rec.Body.String()
	if !strings.Contains(body, `<title>Valorant Weekly Reset Timer</title>`) {
		t.Fatal("valorant title missing")
	}
	if !strings.Contains(body, `class="game-btn active">Valorant</a>`) {
		t.Fatal("valorant not marked active")
	}
	if !strings.Contains(body, `content="https://resets.example.com/valorant"`) {
		t.Fatal("og:url missing path")
	}
}

func TestPage_CrawlerGetsNoScript(t *testing.T) {
	rec := get(t, newTestServer(t).Routes(), "/cs2", func(r *http.Request) {
		r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Discordbot/2.0)")
	})
	body := rec.Body.String()
	if strings.Contains(body, "<script>") {
		t.Fatal("crawler response should not carry the refresh script")
	}
	if !strings.Contains(body, `og:description`) {
		t.Fatal("crawler response lost meta tags")
	}
}

func TestPage_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cs2", nil)
	rec := httptest.NewRecorder()
	newTestServer(t).Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t).Routes(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("unexpected healthz %d %q", rec.Code, rec.Body.String())
	}
}

func TestAPI_NextReset(t *testing.T) {
	rec := get(t, newTestServer(t).Routes(), "/api/next-reset/valorant")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatal("api response must not be cached")
	}
	var got resetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	if got.Game != "valorant" || !got.NextReset.Equal(want) || got.NextResetUnixMS != want.UnixMilli() {
		t.Fatalf("unexpected response %+v", got)
	}
	if got.NowUnixMS != testNow.UnixMilli() {
		t.Fatalf("unexpected now %d", got.NowUnixMS)
	}
	if got.Remaining.Days != 1 || got.Countdown != "1d 0h 0m" || got.Cron != "0 0 * * 2" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestAPI_NextResetUnknownGame(t *testing.T) {
	rec := get(t, newTestServer(t).Routes(), "/api/next-reset/tetris")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Fatalf("want json error body, got %q", rec.Body.String())
	}
}

func TestAPI_Games(t *testing.T) {
	rec := get(t, newTestServer(t).Routes(), "/api/games")
	var got []resetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Game != "cs2" || got[1].Game != "valorant" {
		t.Fatalf("unexpected games %+v", got)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t)
	s.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)
	h := s.Routes()

	if rec := get(t, h, "/api/games"); rec.Code != http.StatusOK {
		t.Fatalf("first request: want 200, got %d", rec.Code)
	}
	if rec := get(t, h, "/api/games"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: want 429, got %d", rec.Code)
	}
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz should bypass the limiter, got %d", rec.Code)
	}
}

func TestPageURL_FromRequest(t *testing.T) {
	s := newTestServer(t)
	s.BaseURL = ""
	req := httptest.NewRequest(http.MethodGet, "http://resets.local/valorant", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if got := s.pageURL(req); got != "https://resets.local/valorant" {
		t.Fatalf("unexpected url %q", got)
	}
}
