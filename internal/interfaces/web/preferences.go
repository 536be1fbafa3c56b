package web

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	preferenceCookie = "reset_timer_game"
	preferenceMaxAge = 365 * 24 * time.Hour
)

// Preferences remembers the last game a visitor opened in a signed cookie so
// that "/" shows it next time. A nil *Preferences is valid and does nothing.
type Preferences struct{ sc *securecookie.SecureCookie }

// NewPreferences signs with hashKey and, when blockKey is non-empty, encrypts too.
func NewPreferences(hashKey, blockKey []byte) *Preferences {
	if len(blockKey) == 0 {
		blockKey = nil
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(preferenceMaxAge.Seconds()))
	return &Preferences{sc: sc}
}

func (p *Preferences) Remember(w http.ResponseWriter, slug string) error {
	if p == nil {
		return nil
	}
	encoded, err := p.sc.Encode(preferenceCookie, map[string]string{"game": slug})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name: preferenceCookie, Value: encoded, Path: "/",
		MaxAge:   int(preferenceMaxAge.Seconds()),
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (p *Preferences) Game(r *http.Request) (string, bool) {
	if p == nil {
		return "", false
	}
	c, err := r.Cookie(preferenceCookie)
	if err != nil {
		return "", false
	}
	value := map[string]string{}
	if err := p.sc.Decode(preferenceCookie, c.Value, &value); err != nil {
		return "", false
	}
	slug := value["game"]
	return slug, slug != ""
}

func (p *Preferences) Clear(w http.ResponseWriter) {
	if p == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name: preferenceCookie, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}
