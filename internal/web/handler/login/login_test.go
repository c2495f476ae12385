package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/db/models"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	websess "github.com/mkeenan750/snapcourse/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "Error" field from the provided fiber.Map (if any)
// so tests can assert error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["Error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.Permission{}, &models.RolePermission{}, &models.User{}))

	return db
}

func newTestApp(t *testing.T, devMode bool) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{
		DevMode: devMode,
		Title:   "snapcourse",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}

	websess.Init(websess.NewMemoryStorage(), time.Minute)

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	require.NoError(t, s.Init(app, &handler.Deps{Cfg: cfg, DB: db, Auth: auth.NewService(db)}))

	return app, db
}

func performPost(t *testing.T, app *fiber.App, form url.Values) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	return resp, string(body)
}

func TestInit_NilDeps(t *testing.T) {
	var s Service

	require.Error(t, s.Init(fiber.New(), nil))
	require.Error(t, s.Init(nil, &handler.Deps{}))
}

func TestGet(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, http.NoBody), -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, string(body))
}

func TestPost_Success_SetsCookieAndSession(t *testing.T) {
	tests := []struct {
		name    string
		devMode bool
		secure  bool
	}{
		{"production", false, true},
		{"dev mode", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, db := newTestApp(t, tt.devMode)

			user, err := auth.NewLocalProvider(db).CreateUser("bob", "bob@example.com", "s3cr3t", "Bob", "Doe", 0)
			require.NoError(t, err)

			resp, _ := performPost(t, app, url.Values{"username": {"bob"}, "password": {"s3cr3t"}})

			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, RedirectPath, resp.Header.Get("Location"))

			var cookie *http.Cookie
			for _, ck := range resp.Cookies() {
				if ck.Name == websess.CookieName {
					cookie = ck
				}
			}

			require.NotNil(t, cookie)
			assert.Equal(t, tt.secure, cookie.Secure)
			assert.True(t, cookie.HttpOnly)

			data := new(websess.Data)
			require.NoError(t, data.Read(cookie.Value))
			assert.Equal(t, websess.User{ID: user.ID, Username: "bob", FullName: "Bob Doe"}, data.User)
			assert.False(t, data.Editing)
		})
	}
}

func TestPost_Errors(t *testing.T) {
	app, db := newTestApp(t, false)

	lp := auth.NewLocalProvider(db)
	_, err := lp.CreateUser("carol", "carol@example.com", "pass", "Carol", "Doe", 0)
	require.NoError(t, err)

	dave, err := lp.CreateUser("dave", "dave@example.com", "pass", "Dave", "Doe", 0)
	require.NoError(t, err)
	require.NoError(t, lp.DeactivateUser(dave.ID))

	tests := []struct {
		name   string
		form   url.Values
		status int
		body   string
	}{
		{"missing password", url.Values{"username": {"carol"}}, http.StatusBadRequest, ErrInvalidFormData.Error()},
		{"wrong password", url.Values{"username": {"carol"}, "password": {"nope"}}, http.StatusUnauthorized, ErrInvalidCredentials.Error()},
		{"unknown user", url.Values{"username": {"nobody"}, "password": {"pass"}}, http.StatusUnauthorized, ErrInvalidCredentials.Error()},
		{"disabled user", url.Values{"username": {"dave"}, "password": {"pass"}}, http.StatusUnauthorized, ErrInvalidCredentials.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := performPost(t, app, tt.form)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, body)
			assert.Empty(t, resp.Header.Get("Set-Cookie"))
		})
	}
}

func TestPost_InvalidBody(t *testing.T) {
	app, _ := newTestApp(t, false)

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, ErrInvalidFormData.Error(), string(body))
}
