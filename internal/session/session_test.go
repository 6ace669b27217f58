package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip-england/shipdesk/internal/apiclient"
	"github.com/phillip-england/shipdesk/internal/model"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func newManager() *Manager {
	return NewManager(apiclient.New("http://backend.invalid"), false)
}

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/employee", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestSaveThenLoad(t *testing.T) {
	m := newManager()
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	auth := model.AuthResponse{Token: signedToken(t, exp), UserID: 4, Username: "ana", Email: "ana@example.com", Role: model.RoleEmployee}

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, auth))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.True(t, c.HttpOnly)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.Expires.Equal(exp.UTC()), c.Name)
	}

	sc, err := m.Load(requestWith(cookies))
	require.NoError(t, err)
	assert.Equal(t, auth.Token, sc.Token)
	assert.Equal(t, auth.Profile(), sc.User)
	assert.NotNil(t, sc.API)
	assert.NotNil(t, sc.Cache)
}

func TestSaveWithoutExpiryUsesSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, newManager().Save(rec, model.AuthResponse{Token: "opaque", Role: model.RoleCustomer}))
	for _, c := range rec.Result().Cookies() {
		assert.True(t, c.Expires.IsZero())
	}
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	assert.Error(t, newManager().Save(httptest.NewRecorder(), model.AuthResponse{}))
}

func TestLoadNeedsBothCookies(t *testing.T) {
	m := newManager()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, model.AuthResponse{Token: "opaque", Role: model.RoleCustomer}))
	cookies := rec.Result().Cookies()

	for _, c := range cookies {
		_, err := m.Load(requestWith([]*http.Cookie{c}))
		assert.True(t, errors.Is(err, ErrNoSession), c.Name)
	}

	broken := []*http.Cookie{{Name: TokenCookie, Value: "x"}, {Name: UserCookie, Value: "%%%"}}
	_, err := m.Load(requestWith(broken))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClearExpiresBothCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	newManager().Clear(rec)

	names := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		names[c.Name] = true
		assert.Equal(t, -1, c.MaxAge)
		assert.Empty(t, c.Value)
	}
	assert.Equal(t, map[string]bool{TokenCookie: true, UserCookie: true}, names)
}

func TestRequireRole(t *testing.T) {
	m := newManager()
	var seen *Context
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = From(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	denied := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "You do not have permission to access this page", http.StatusForbidden)
	}
	h := m.RequireRole(model.RoleEmployee, "/login", denied)(next)

	t.Run("no session redirects", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employee", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("wrong role is refused and cleared", func(t *testing.T) {
		save := httptest.NewRecorder()
		require.NoError(t, m.Save(save, model.AuthResponse{Token: "opaque", Role: model.RoleCustomer}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestWith(save.Result().Cookies()))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "You do not have permission to access this page")
		assert.Len(t, rec.Result().Cookies(), 2)
	})

	t.Run("matching role passes the session on", func(t *testing.T) {
		save := httptest.NewRecorder()
		require.NoError(t, m.Save(save, model.AuthResponse{Token: "opaque", Username: "ana", Role: model.RoleEmployee}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestWith(save.Result().Cookies()))
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "ana", seen.User.Username)
	})
}

func TestCacheRemember(t *testing.T) {
	c := NewCache()
	calls := 0
	fetch := func() ([]int, error) {
		calls++
		return []int{1, 2}, nil
	}

	first, err := Remember(c, "offices", fetch)
	require.NoError(t, err)
	second, err := Remember(c, "offices", fetch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	_, err = Remember(c, "companies", func() ([]int, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	_, err = Remember(c, "companies", fetch)
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
