package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imaadi07/User-Authentication/internal/interface/middleware"
	"github.com/imaadi07/User-Authentication/pkg/helpers"
)

func getWithCookie(app *testApp, path string, ck *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	return w
}

func TestDashboard_FullFlow(t *testing.T) {
	app := newTestApp(t)

	// POST /signup -> 302 to /dashboard.html with the token cookie set
	w := postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard.html", w.Header().Get("Location"))
	ck := tokenCookie(t, w)
	require.NotNil(t, ck)

	// GET /dashboard with that cookie -> greeting
	w = getWithCookie(app, "/dashboard", ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome, alice!", w.Body.String())
}

func TestDashboard_NoCookie(t *testing.T) {
	app := newTestApp(t)

	w := getWithCookie(app, "/dashboard", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login.html", w.Header().Get("Location"))
}

func TestDashboard_ExpiredToken(t *testing.T) {
	app := newTestApp(t)
	postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})

	// same secret, negative TTL: a token already past its 2h window
	expired := helpers.NewTokenManager("handler_test_secret_key_hs256_x", -time.Hour)
	token, _, err := expired.Issue(app.repo.byUsername["alice"].ID)
	require.NoError(t, err)

	w := getWithCookie(app, "/dashboard", &http.Cookie{Name: helpers.TokenCookieName, Value: token})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login.html", w.Header().Get("Location"))
}

func TestDashboard_UserDeletedAfterIssue(t *testing.T) {
	app := newTestApp(t)
	w := postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})
	ck := tokenCookie(t, w)
	require.NotNil(t, ck)

	// the token stays valid but the record is gone
	id := app.repo.byUsername["alice"].ID
	delete(app.repo.byID, id)
	delete(app.repo.byUsername, "alice")

	w = getWithCookie(app, "/dashboard", ck)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPage, w.Header().Get("Location"))
}

func TestMe_ReturnsProfileEnvelope(t *testing.T) {
	app := newTestApp(t)
	w := postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})
	ck := tokenCookie(t, w)
	require.NotNil(t, ck)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(ck)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "alice", body.Data.Username)
	assert.NotEmpty(t, body.Data.ID)
}

func TestMe_Unauthenticated(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
