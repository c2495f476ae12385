package theme

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/db/controller/setting"
	"github.com/mkeenan750/snapcourse/internal/db/models"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/session"
)

type captureViews struct {
	name string
	data fiber.Map
}

func (v *captureViews) Load() error { return nil }

func (v *captureViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.name = name
	v.data, _ = data.(fiber.Map)
	_, _ = io.WriteString(w, name)

	return nil
}

func setup(t *testing.T) (*fiber.App, *gorm.DB, *captureViews) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	views := &captureViews{}
	app := fiber.New(fiber.Config{Views: views})

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.LocalSession, &session.Data{User: session.User{ID: 1}})

		if c.Get("X-Test-Admin") != "" {
			c.Locals(auth.LocalCapabilities, auth.NewCapabilities(auth.CapView, auth.CapAdminSettings))
		} else {
			c.Locals(auth.LocalCapabilities, auth.NewCapabilities(auth.CapView))
		}

		return c.Next()
	})

	cfg := &config.Config{Title: "site", Theme: config.Theme{DiscloseUnavailable: true}}

	var s Service
	require.NoError(t, s.Init(app, &handler.Deps{Cfg: cfg, DB: db, Auth: auth.NewService(db)}))

	return app, db, views
}

func TestGet(t *testing.T) {
	app, _, views := setup(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, http.NoBody), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, Path, http.NoBody)
	req.Header.Set("X-Test-Admin", "1")

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, views.name)
	// nothing saved yet, the config defaults apply
	assert.Equal(t, setting.Theme{DiscloseUnavailable: true}, views.data["Theme"])
}

func TestPost(t *testing.T) {
	app, db, views := setup(t)

	form := url.Values{"disableeditorhints": {"1"}}
	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.Header.Set("X-Test-Admin", "1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, views.data["Success"])

	theme, err := setting.LoadTheme(db, config.Theme{DiscloseUnavailable: true})
	require.NoError(t, err)
	assert.Equal(t, setting.Theme{DisableEditorHints: true}, theme)
}

func TestPost_Forbidden(t *testing.T) {
	app, db, _ := setup(t)

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader("disableeditorhints=1"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, err = setting.Get(db, setting.ThemeName)
	assert.ErrorIs(t, err, setting.ErrSettingNotFound)
}
