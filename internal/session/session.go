// Package session keeps the signed-in user in two browser cookies and exposes
// it to handlers as an explicit per-request Context.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/model"
)

const (
	TokenCookie = "jwt_token"
	UserCookie  = "user_data"
)

var ErrNoSession = errors.New("no session")

// Context is what a handler knows about the signed-in user for one request.
type Context struct {
	Token string
	User  model.Profile
	API   *apiclient.Client
	Cache *Cache
}

type ctxKey struct{}

func With(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// From returns the session injected by RequireRole, or nil.
func From(ctx context.Context) *Context {
	sc, _ := ctx.Value(ctxKey{}).(*Context)
	return sc
}

type Manager struct {
	api    *apiclient.Client
	secure bool
	now    func() time.Time
}

func NewManager(api *apiclient.Client, secure bool) *Manager {
	return &Manager{api: api, secure: secure, now: time.Now}
}

// Save writes both cookies. They share one expiry taken from the token's exp claim.
func (m *Manager) Save(w http.ResponseWriter, auth model.AuthResponse) error {
	if strings.TrimSpace(auth.Token) == "" {
		return errors.New("auth response has no token")
	}
	profile, err := json.Marshal(auth.Profile())
	if err != nil {
		return err
	}
	expires := m.tokenExpiry(auth.Token)
	http.SetCookie(w, m.cookie(TokenCookie, auth.Token, expires))
	http.SetCookie(w, m.cookie(UserCookie, base64.RawURLEncoding.EncodeToString(profile), expires))
	return nil
}

// Load reads both cookies. A missing or undecodable half counts as no session.
func (m *Manager) Load(r *http.Request) (*Context, error) {
	tokenCookie, err := r.Cookie(TokenCookie)
	if err != nil || strings.TrimSpace(tokenCookie.Value) == "" {
		return nil, ErrNoSession
	}
	userCookie, err := r.Cookie(UserCookie)
	if err != nil {
		return nil, ErrNoSession
	}
	raw, err := base64.RawURLEncoding.DecodeString(userCookie.Value)
	if err != nil {
		return nil, ErrNoSession
	}
	var profile model.Profile
	if err := json.Unmarshal(raw, &profile); err != nil || profile.Role == "" {
		return nil, ErrNoSession
	}
	return &Context{
		Token: tokenCookie.Value,
		User:  profile,
		API:   m.api.WithToken(tokenCookie.Value),
		Cache: NewCache(),
	}, nil
}

// Clear expires both cookies.
func (m *Manager) Clear(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, UserCookie} {
		c := m.cookie(name, "", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (m *Manager) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// tokenExpiry reads exp without verifying the signature; the backend owns the key.
// A zero time yields a browser-session cookie.
func (m *Manager) tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || exp.Time.Before(m.now()) {
		return time.Time{}
	}
	return exp.Time
}

// RequireRole injects the session into the request context. Without a session
// the browser goes to loginPath; with the wrong role the session is dropped and
// denied renders the refusal.
func (m *Manager) RequireRole(role model.Role, loginPath string, denied http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, err := m.Load(r)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			if sc.User.Role != role {
				m.Clear(w)
				denied(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(With(r.Context(), sc)))
		})
	}
}
