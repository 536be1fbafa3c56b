package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func withCookies(cookies []*http.Cookie) func(*http.Request) {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func TestPreferences_RootUsesLastGame(t *testing.T) {
	s := newTestServer(t)
	s.Preferences = NewPreferences([]byte(strings.Repeat("k", 32)), []byte(strings.Repeat("b", 16)))
	h := s.Routes()

	first := get(t, h, "/valorant")
	cookies := first.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != preferenceCookie {
		t.Fatalf("want preference cookie, got %v", cookies)
	}

	rec := get(t, h, "/", withCookies(cookies))
	if !strings.Contains(rec.Body.String(), `<title>Valorant Weekly Reset Timer</title>`) {
		t.Fatal("root did not honor the preferred game")
	}

	// an explicit path still wins over the cookie
	rec = get(t, h, "/cs2", withCookies(cookies))
	if !strings.Contains(rec.Body.String(), `<title>CS2 Weekly Drop Reset Timer</title>`) {
		t.Fatal("explicit path lost to the cookie")
	}
}

func TestPreferences_RejectsForgedCookie(t *testing.T) {
	s := newTestServer(t)
	s.Preferences = NewPreferences([]byte(strings.Repeat("k", 32)), nil)
	forged := &http.Cookie{Name: preferenceCookie, Value: "valorant"}

	rec := get(t, s.Routes(), "/", withCookies([]*http.Cookie{forged}))
	if !strings.Contains(rec.Body.String(), `<title>CS2 Weekly Drop Reset Timer</title>`) {
		t.Fatal("forged cookie changed the page")
	}
}

func TestPreferences_ClearsUnknownGame(t *testing.T) {
	p := NewPreferences([]byte(strings.Repeat("k", 32)), nil)
	rec := httptest.NewRecorder()
	if err := p.Remember(rec, "removed-game"); err != nil {
		t.Fatal(err)
	}

	s := newTestServer(t)
	s.Preferences = p
	res := get(t, s.Routes(), "/", withCookies(rec.Result().Cookies()))
	cleared := res.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("want cookie cleared, got %v", cleared)
	}
}

func TestPreferences_NilIsNoop(t *testing.T) {
	var p *Preferences
	rec := httptest.NewRecorder()
	if err := p.Remember(rec, "cs2"); err != nil {
		t.Fatal(err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("nil preferences set a cookie")
	}
	if _, ok := p.Game(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("nil preferences returned a game")
	}
}
