// Package coursepage serves the course pages and the section editing actions.
package coursepage

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/course"
	controller "github.com/mkeenan750/snapcourse/internal/db/controller/course"
	"github.com/mkeenan750/snapcourse/internal/db/controller/setting"
	"github.com/mkeenan750/snapcourse/internal/files"
	"github.com/mkeenan750/snapcourse/internal/render"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
)

const (
	// Path is the course route group.
	Path = handler.RootPath + "course/:id"

	// SectionPath is the section route group below Path.
	SectionPath = "/section/:n"

	// TemplateView is the multiple-section course page.
	TemplateView = "course/view"
	// TemplateSection is the single-section page.
	TemplateSection = "course/section"
	// TemplateEdit is the section edit form.
	TemplateEdit = "course/edit"
	// TemplateDelete is the section delete confirmation.
	TemplateDelete = "course/delete"

	msgSectionNotAvailable = "sectionnotavailable"
	msgInvalidForm         = "invalidform"
)

// Service is the course page handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	files     files.Store
	validator *validator.Validate
	now       func() time.Time
}

// Handler is the course page handler.
var Handler = Service{}

// Init initializes the course handler and registers its routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = deps.Cfg
	s.db = deps.DB
	s.files = deps.Files
	s.validator = validator.New()

	if s.now == nil {
		s.now = time.Now
	}

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, auth.RequirePermission(auth.CapView), s.View)
		router.Post("/editing", auth.RequirePermission(auth.CapUpdate), s.ToggleEditing)
		router.Post("/sections", auth.RequirePermission(auth.CapUpdate), s.AddSection)
		router.Get("/module/:mid/file", auth.RequirePermission(auth.CapView), s.File)

		router.Route(SectionPath, func(section fiber.Router) {
			section.Post("/visibility", auth.RequirePermission(auth.CapSectionVisibility), s.Visibility)
			section.Post("/move", auth.RequirePermission(auth.CapMoveSections), s.Move)
			section.Get("/delete", auth.RequirePermission(auth.CapUpdate), s.DeleteConfirm)
			section.Post("/delete", auth.RequirePermission(auth.CapUpdate), s.Delete)
			section.Get("/edit", auth.RequirePermission(auth.CapUpdate), s.EditForm)
			section.Post("/edit", auth.RequirePermission(auth.CapUpdate), s.Edit)
			section.Post("/modules", auth.RequirePermission(auth.CapManageActivities), s.AddModule)
			section.Post("/upload", auth.RequirePermission(auth.CapManageActivities), s.Upload)
		})
	})

	return nil
}

// courseID parses the :id route parameter.
func courseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrNotFound
	}

	return id, nil
}

// sectionNumber parses the :n route parameter.
func sectionNumber(c *fiber.Ctx) (int, error) {
	n, err := c.ParamsInt("n")
	if err != nil || n < 0 {
		return 0, fiber.ErrNotFound
	}

	return n, nil
}

// returnSection reads the sr query parameter naming the section page to
// return to, 0 for the course page.
func returnSection(c *fiber.Ctx) int {
	return max(c.QueryInt("sr"), 0)
}

// backTo redirects to the section page sr, or to section n on the course page.
func backTo(c *fiber.Ctx, id uint64, n, sr int) error {
	if sr > 0 {
		return c.Redirect(course.SectionPageURL(id, sr))
	}

	return c.Redirect(course.SectionAnchorURL(id, n))
}

// mapError turns controller errors into http errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, controller.ErrCourseNotFound),
		errors.Is(err, controller.ErrSectionNotFound),
		errors.Is(err, controller.ErrModuleNotFound),
		errors.Is(err, render.ErrSectionNotFound),
		errors.Is(err, files.ErrNotFound):
		return fiber.ErrNotFound
	case errors.Is(err, controller.ErrInvalidMove),
		errors.Is(err, controller.ErrInvalidSection):
		return fiber.ErrBadRequest
	}

	log.Error().Err(err).Msg("course request failed")

	return fiber.ErrInternalServerError
}

// theme returns the render theme from the stored site settings.
func (s *Service) theme() render.Theme {
	stored, err := setting.LoadTheme(s.db, s.cfg.Theme)
	if err != nil {
		log.Error().Err(err).Msg("failed to load theme settings, using defaults")
	}

	return render.Theme{
		EditorHints: !stored.DisableEditorHints,
		Policy:      course.Policy{DiscloseUnavailable: stored.DiscloseUnavailable},
		ModuleTypes: s.cfg.Theme.ModuleTypes,
	}
}

// renderContext loads course id and evaluates it for the requesting user.
func (s *Service) renderContext(c *fiber.Ctx, id uint64) (*render.Context, error) {
	crs, err := controller.Get(s.db, id)
	if err != nil {
		return nil, err
	}

	sections, err := controller.Sections(s.db, id)
	if err != nil {
		return nil, err
	}

	modules, err := controller.Modules(s.db, id)
	if err != nil {
		return nil, err
	}

	var (
		now    = s.now()
		tr     = locale.FromContext(c)
		rights = auth.CapabilitiesFromContext(c).CourseRights()
		ctx    = render.NewSnapshot(crs, sections, modules, rights, now, tr).Context(rights, tr, s.theme(), now)
	)

	ctx.CSRFToken = handler.CSRFToken(c)

	if sess := auth.SessionFromContext(c); sess != nil {
		ctx.UserFullName = sess.User.FullName
		ctx.Editing = sess.Editing && rights.Update
	}

	return ctx, nil
}

// sectionOf returns section n of ctx, including stealth sections.
func sectionOf(ctx *render.Context, n int) (course.SectionInfo, error) {
	if n >= len(ctx.Sections) {
		return course.SectionInfo{}, controller.ErrSectionNotFound
	}

	return ctx.Sections[n], nil
}

// invalidForm is the 400 error of a rejected form.
func invalidForm(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusBadRequest, locale.FromContext(c).T(msgInvalidForm, nil))
}
