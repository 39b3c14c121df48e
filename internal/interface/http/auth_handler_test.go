package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authapp "github.com/imaadi07/User-Authentication/internal/application"
	"github.com/imaadi07/User-Authentication/internal/domain/entity"
	repo "github.com/imaadi07/User-Authentication/internal/domain/repository"
	"github.com/imaadi07/User-Authentication/internal/interface/middleware"
	"github.com/imaadi07/User-Authentication/pkg/helpers"
	"github.com/imaadi07/User-Authentication/pkg/validation"
)

type fakeUserRepo struct {
	byID       map[string]*entity.User
	byUsername map[string]*entity.User
	nextID     int
	failWith   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byUsername: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.byUsername[u.Username]; ok {
		return repo.ErrDuplicateUsername
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	f.byUsername[u.Username] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type testApp struct {
	engine *gin.Engine
	repo   *fakeUserRepo
	tokens *helpers.TokenManager
}

// newTestApp wires the full route surface the way main does, minus redis.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	r := newFakeUserRepo()
	tokens := helpers.NewTokenManager("handler_test_secret_key_hs256_x", 2*time.Hour)
	svc := authapp.NewService(r, tokens, helpers.NewLogger("test", "test"))

	authH := NewAuthHandler(svc, helpers.NewLogger("test", "test"), "localhost", false)
	dashH := NewDashboardHandler(svc, helpers.NewLogger("test", "test"))

	e := gin.New()
	e.POST("/signup", authH.Signup)
	e.POST("/login", authH.Login)
	e.POST("/logout", authH.Logout)
	gate := e.Group("/", middleware.SessionGate(tokens))
	gate.GET("/dashboard", dashH.Dashboard)
	gate.GET("/api/me", dashH.Me)

	return &testApp{engine: e, repo: r, tokens: tokens}
}

func postForm(app *testApp, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	return w
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.TokenCookieName {
			return ck
		}
	}
	return nil
}

func TestSignup_Success(t *testing.T) {
	app := newTestApp(t)

	w := postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, DashboardPage, w.Header().Get("Location"))

	ck := tokenCookie(t, w)
	require.NotNil(t, ck, "signup must set the token cookie")
	claims, err := app.tokens.Verify(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, app.repo.byUsername["alice"].ID, claims.UserID)
	assert.True(t, ck.HttpOnly)
}

func TestSignup_MissingFields(t *testing.T) {
	app := newTestApp(t)

	for _, form := range []url.Values{
		{},
		{"username": {"alice"}},
		{"password": {"pw1"}},
		{"username": {""}, "password": {""}},
	} {
		w := postForm(app, "/signup", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All fields are required", w.Body.String())
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	app := newTestApp(t)

	w := postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusFound, w.Code)

	// regardless of password
	for _, pw := range []string{"pw1", "different"} {
		w = postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {pw}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User already exists", w.Body.String())
	}
}

func TestSignup_StoreError(t *testing.T) {
	app := newTestApp(t)
	app.repo.failWith = errors.New("dial tcp: connection refused")

	w := postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// generic message, no detail leaked
	assert.Equal(t, "Server Error", w.Body.String())
}

func TestSignup_AcceptsJSONBody(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"username":"alice","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.NotNil(t, tokenCookie(t, w))
}

func TestSignup_JSONBindErrorReturnsDetails(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Error   map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "invalid payload", body.Message)
	assert.Equal(t, "is required", body.Error["password"])
}

func TestSignup_JSONUsernameTooLong(t *testing.T) {
	app := newTestApp(t)

	long := strings.Repeat("a", 65)
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"username":"`+long+`","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "username")
}

func TestLogin_JSONBindErrorReturnsDetails(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "is required", body.Error["username"])
}

func TestLogin_FormBindErrorKeepsTerseBody(t *testing.T) {
	app := newTestApp(t)

	w := postForm(app, "/login", url.Values{"username": {"alice"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", w.Body.String())
}

func TestLogin_Success(t *testing.T) {
	app := newTestApp(t)
	postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})

	w := postForm(app, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, DashboardPage, w.Header().Get("Location"))
	require.NotNil(t, tokenCookie(t, w))
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	postForm(app, "/signup", url.Values{"username": {"alice"}, "password": {"pw1"}})

	w := postForm(app, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", w.Body.String())
	assert.Nil(t, tokenCookie(t, w))
}

func TestLogin_UnknownUsername(t *testing.T) {
	app := newTestApp(t)

	w := postForm(app, "/login", url.Values{"username": {"nobody"}, "password": {"pw1"}})

	// identical to the wrong-password response
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", w.Body.String())
}

func TestLogin_StoreError(t *testing.T) {
	app := newTestApp(t)
	app.repo.failWith = errors.New("dial tcp: connection refused")

	w := postForm(app, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server Error", w.Body.String())
}

func TestLogout_ClearsCookie(t *testing.T) {
	app := newTestApp(t)

	w := postForm(app, "/logout", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login.html", w.Header().Get("Location"))
	ck := tokenCookie(t, w)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
}
