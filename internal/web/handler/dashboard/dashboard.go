// Package dashboard lists the courses of the site.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/course"
	controller "github.com/mkeenan750/snapcourse/internal/db/controller/course"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
	"github.com/mkeenan750/snapcourse/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = navigation.Home

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	// MsgTitle is the page title message id.
	MsgTitle = "mycourses"
)

// Entry is one course of the list.
type Entry struct {
	ShortName   string
	FullName    string
	URL         string
	NumSections int
}

// Service is the dashboard handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = deps.DB
	s.cfg = deps.Cfg

	// register routes with permission checks
	app.Get(Path, auth.RequirePermission(auth.CapView), s.Get)

	// redirect root to dashboard
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(Path)
	})

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	tr := locale.FromContext(c)
	nav := navigation.NewContext(tr, tr.T(MsgTitle, nil), "dashboard")

	courses, err := controller.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list courses")

		return fiber.ErrInternalServerError
	}

	entries := make([]Entry, 0, len(courses))
	for _, c := range courses {
		entries = append(entries, Entry{
			ShortName:   c.ShortName,
			FullName:    c.FullName,
			URL:         course.CourseURL(c.ID),
			NumSections: c.NumSections,
		})
	}

	return handler.Render(c, s.cfg.Title, TemplateName, nav, fiber.Map{
		"Courses": entries,
	})
}
