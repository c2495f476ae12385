// Package theme edits the course page settings of the site.
package theme

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/db/controller/setting"
	"github.com/mkeenan750/snapcourse/internal/i18n"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
	"github.com/mkeenan750/snapcourse/internal/web/navigation"
)

const (
	// Path is the path to the theme settings page.
	Path = handler.RootPath + "admin/settings/theme"

	// TemplateName is the name of the theme settings template.
	TemplateName = "admin/theme"

	msgTitle   = "themesettings"
	msgSaved   = "settingssaved"
	msgInvalid = "invalidform"
)

// Form is the submitted theme settings form. Unchecked boxes are not sent
// and parse as false.
type Form struct {
	DisableEditorHints  bool `form:"disableeditorhints"`
	DiscloseUnavailable bool `form:"discloseunavailable"`
}

// Service is the theme settings handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the theme settings handler.
var Handler = Service{}

// Init initializes the theme settings handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = deps.Cfg
	s.db = deps.DB

	app.Get(Path, auth.RequirePermission(auth.CapAdminSettings), s.Get)
	app.Post(Path, auth.RequirePermission(auth.CapAdminSettings), s.Post)

	return nil
}

func nav(tr *i18n.Localizer) *navigation.Context {
	return navigation.NewContext(tr, tr.T(msgTitle, nil), "theme").
		AddBreadcrumb(tr.T(msgTitle, nil), Path, true)
}

// Get renders the stored settings.
func (s *Service) Get(c *fiber.Ctx) error {
	theme, err := setting.LoadTheme(s.db, s.cfg.Theme)
	if err != nil {
		log.Error().Err(err).Msg("failed to load theme settings")

		return fiber.ErrInternalServerError
	}

	return s.render(c, theme, "", "")
}

// Post stores the submitted settings.
func (s *Service) Post(c *fiber.Ctx) error {
	tr := locale.FromContext(c)

	form := Form{}
	if err := c.BodyParser(&form); err != nil {
		log.Debug().Err(err).Msg("failed to parse theme settings form")

		c.Status(fiber.StatusBadRequest)

		return s.render(c, setting.Theme{}, "", tr.T(msgInvalid, nil))
	}

	theme := setting.Theme(form)

	if err := setting.SaveTheme(s.db, theme); err != nil {
		log.Error().Err(err).Msg("failed to save theme settings")

		return fiber.ErrInternalServerError
	}

	log.Info().
		Bool("disableEditorHints", theme.DisableEditorHints).
		Bool("discloseUnavailable", theme.DiscloseUnavailable).
		Msg("theme settings saved")

	return s.render(c, theme, tr.T(msgSaved, nil), "")
}

func (s *Service) render(c *fiber.Ctx, theme setting.Theme, success, errMsg string) error {
	data := fiber.Map{
		"Theme":     theme,
		"ActionURL": Path,
	}

	if success != "" {
		data["Success"] = success
	}

	if errMsg != "" {
		data["Error"] = errMsg
	}

	return handler.Render(c, s.cfg.Title, TemplateName, nav(locale.FromContext(c)), data)
}
