package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	refreshCookieName = "refresh_token"
	refreshValueKey   = "token"
)

// CookieConfig configures the sealed refresh-token cookie.
type CookieConfig struct {
	HashKey  []byte
	BlockKey []byte
	Secure   bool
	TTL      time.Duration
}

// RefreshCookies stores the refresh token in an HTTP-only cookie sealed by
// securecookie, so the client never sees the raw JWT.
type RefreshCookies struct {
	store *sessions.CookieStore
}

// NewRefreshCookies builds the cookie store from cfg.
func NewRefreshCookies(cfg CookieConfig) *RefreshCookies {
	store := sessions.NewCookieStore(cfg.HashKey, cfg.BlockKey)
	store.MaxAge(int(cfg.TTL / time.Second))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Secure
	store.Options.SameSite = http.SameSiteLaxMode
	return &RefreshCookies{store: store}
}

// Set writes the refresh token cookie.
func (c *RefreshCookies) Set(w http.ResponseWriter, r *http.Request, token string) error {
	// A stale or foreign cookie yields a decode error and a fresh session; overwrite it.
	sess, _ := c.store.New(r, refreshCookieName)
	sess.Values[refreshValueKey] = token
	return sess.Save(r, w)
}

// Get returns the refresh token from the request. ok is false when the cookie
// is absent. A cookie that fails authentication returns an error.
func (c *RefreshCookies) Get(r *http.Request) (token string, ok bool, err error) {
	if _, cerr := r.Cookie(refreshCookieName); cerr != nil {
		return "", false, nil
	}
	sess, err := c.store.New(r, refreshCookieName)
	if err != nil {
		return "", true, err
	}
	token, _ = sess.Values[refreshValueKey].(string)
	return token, true, nil
}

// Clear expires the refresh token cookie.
func (c *RefreshCookies) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := c.store.New(r, refreshCookieName)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
