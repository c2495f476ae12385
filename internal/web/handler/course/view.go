package coursepage

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mkeenan750/snapcourse/internal/course"
	"github.com/mkeenan750/snapcourse/internal/render"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
	"github.com/mkeenan750/snapcourse/internal/web/navigation"
)

// View renders the course page, or the single-section page when the
// section query parameter is present.
func (s *Service) View(c *fiber.Ctx) error {
	id, err := courseID(c)
	if err != nil {
		return err
	}

	ctx, err := s.renderContext(c, id)
	if err != nil {
		return mapError(err)
	}

	data := fiber.Map{
		"Course":     ctx.Course,
		"CanEdit":    ctx.Rights.Update,
		"Editing":    ctx.Editing,
		"EditingURL": course.EditingURL(id, 0),
	}

	if c.Query("section") == "" {
		data["Page"] = ctx.MultipleSectionPage()

		return handler.Render(c, s.cfg.Title, TemplateView, navigation.ForCourse(ctx.T, ctx.Course), data)
	}

	number := c.QueryInt("section", -1)

	page, err := ctx.SingleSectionPage(number)

	switch {
	case errors.Is(err, render.ErrSectionUnavailable):
		return fiber.NewError(fiber.StatusForbidden, locale.FromContext(c).T(msgSectionNotAvailable, nil))
	case err != nil:
		return mapError(err)
	}

	data["Page"] = page
	data["EditingURL"] = course.EditingURL(id, number)
	nav := navigation.ForSection(ctx.T, ctx.Course, ctx.Sections[number])

	return handler.Render(c, s.cfg.Title, TemplateSection, nav, data)
}
