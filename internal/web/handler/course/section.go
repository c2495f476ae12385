package coursepage

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/course"
	controller "github.com/mkeenan750/snapcourse/internal/db/controller/course"
	"github.com/mkeenan750/snapcourse/internal/web/handler"
	"github.com/mkeenan750/snapcourse/internal/web/middleware/locale"
	"github.com/mkeenan750/snapcourse/internal/web/navigation"
)

// SectionForm is the section edit form.
type SectionForm struct {
	Name       string `form:"name" validate:"max=255"`
	UseDefault bool   `form:"usedefault"`
	Summary    string `form:"summary" validate:"max=65535"`
}

// NewSectionForm is the add-section form.
type NewSectionForm struct {
	Name    string `form:"newsection" validate:"required,max=255"`
	Summary string `form:"summary" validate:"max=65535"`
}

// ToggleEditing switches the editing mode of the session.
func (s *Service) ToggleEditing(c *fiber.Ctx) error {
	id, err := courseID(c)
	if err != nil {
		return err
	}

	sess := auth.SessionFromContext(c)
	if sess == nil {
		return fiber.ErrUnauthorized
	}

	updated := *sess
	updated.Editing = !sess.Editing

	if err = updated.Write(auth.SessionIDFromContext(c), s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return fiber.ErrInternalServerError
	}

	return c.Redirect(course.ReturnURL(id, returnSection(c)))
}

// Visibility hides or shows a section.
func (s *Service) Visibility(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	visible, err := controller.ToggleSectionVisibility(s.db, id, n)
	if err != nil {
		return mapError(err)
	}

	log.Info().Uint64("course", id).Int("section", n).Bool("visible", visible).
		Str("user", username(c)).Msg("section visibility changed")

	return backTo(c, id, n, returnSection(c))
}

// Move swaps a section with its neighbour in direction dir.
func (s *Service) Move(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	dir := c.QueryInt("dir")
	if dir != -1 && dir != 1 {
		return fiber.ErrBadRequest
	}

	if err = controller.MoveSection(s.db, id, n, dir); err != nil {
		return mapError(err)
	}

	log.Info().Uint64("course", id).Int("section", n).Int("dir", dir).
		Str("user", username(c)).Msg("section moved")

	return c.Redirect(course.SectionAnchorURL(id, n+dir))
}

// DeleteConfirm asks before deleting a section.
func (s *Service) DeleteConfirm(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	ctx, err := s.renderContext(c, id)
	if err != nil {
		return mapError(err)
	}

	sec, err := sectionOf(ctx, n)
	if err != nil {
		return mapError(err)
	}

	if !course.CanDeleteSection(sec, ctx.Rights) {
		return fiber.ErrForbidden
	}

	sr := returnSection(c)
	name := course.SectionName(ctx.Course, sec, ctx.T)

	return handler.Render(c, s.cfg.Title, TemplateDelete, navigation.ForSection(ctx.T, ctx.Course, sec), fiber.Map{
		"Course":    ctx.Course,
		"Number":    n,
		"Name":      name,
		"Question":  ctx.T.T("confirmdeletesection", map[string]any{"Name": name}),
		"ActionURL": course.DeleteURL(id, n, sr),
		"CancelURL": course.ReturnURL(id, sr),
	})
}

// Delete removes a section with its activities and their files.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	ctx, err := s.renderContext(c, id)
	if err != nil {
		return mapError(err)
	}

	sec, err := sectionOf(ctx, n)
	if err != nil {
		return mapError(err)
	}

	if !course.CanDeleteSection(sec, ctx.Rights) {
		return fiber.ErrForbidden
	}

	keys, err := controller.SectionFileKeys(s.db, id, n)
	if err != nil {
		return mapError(err)
	}

	if err = controller.DeleteSection(s.db, id, n); err != nil {
		return mapError(err)
	}

	s.removeFiles(c.UserContext(), keys)

	log.Info().Uint64("course", id).Int("section", n).
		Str("user", username(c)).Msg("section deleted")

	return c.Redirect(course.CourseURL(id))
}

// removeFiles deletes stored files whose activities are gone. Failures only
// leave unreferenced files behind.
func (s *Service) removeFiles(ctx context.Context, keys []string) {
	if s.files == nil {
		return
	}

	for _, key := range keys {
		if err := s.files.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete file")
		}
	}
}

// EditForm shows the section edit form.
func (s *Service) EditForm(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	ctx, err := s.renderContext(c, id)
	if err != nil {
		return mapError(err)
	}

	sec, err := sectionOf(ctx, n)
	if err != nil {
		return mapError(err)
	}

	form := SectionForm{Summary: sec.Summary, UseDefault: !sec.HasName()}
	if sec.HasName() {
		form.Name = *sec.Name
	}

	return s.renderEdit(c, ctx.Course, sec, form, "")
}

func (s *Service) renderEdit(c *fiber.Ctx, crs course.Course, sec course.SectionInfo, form SectionForm, errMsg string) error {
	tr := locale.FromContext(c)
	sr := returnSection(c)

	data := fiber.Map{
		"Course":      crs,
		"Number":      sec.Number,
		"Heading":     tr.T("editsection", map[string]any{"Name": course.SectionName(crs, sec, tr)}),
		"DefaultName": course.DefaultSectionName(crs, sec.Number, tr),
		"Form":        form,
		"ActionURL":   course.EditSectionURL(crs.ID, sec.Number, sr),
		"CancelURL":   course.ReturnURL(crs.ID, sr),
	}

	if errMsg != "" {
		data["Error"] = errMsg
		c.Status(fiber.StatusBadRequest)
	}

	return handler.Render(c, s.cfg.Title, TemplateEdit, navigation.ForSection(tr, crs, sec), data)
}

// Edit stores the section name and summary.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	ctx, err := s.renderContext(c, id)
	if err != nil {
		return mapError(err)
	}

	sec, err := sectionOf(ctx, n)
	if err != nil {
		return mapError(err)
	}

	form := SectionForm{}
	if err = c.BodyParser(&form); err != nil {
		return s.renderEdit(c, ctx.Course, sec, form, ctx.T.T(msgInvalidForm, nil))
	}

	if err = s.validator.Struct(form); err != nil {
		return s.renderEdit(c, ctx.Course, sec, form, ctx.T.T(msgInvalidForm, nil))
	}

	var name *string

	if trimmed := strings.TrimSpace(form.Name); !form.UseDefault && trimmed != "" {
		name = &trimmed
	}

	if err = controller.UpdateSection(s.db, id, n, name, form.Summary); err != nil {
		return mapError(err)
	}

	return backTo(c, id, n, returnSection(c))
}

// AddSection appends a new section after the last regular one.
func (s *Service) AddSection(c *fiber.Ctx) error {
	id, err := courseID(c)
	if err != nil {
		return err
	}

	form := NewSectionForm{}
	if err = c.BodyParser(&form); err != nil {
		return invalidForm(c)
	}

	form.Name = strings.TrimSpace(form.Name)

	if err = s.validator.Struct(form); err != nil {
		return invalidForm(c)
	}

	sec, err := controller.AddSection(s.db, id, &form.Name, form.Summary)
	if err != nil {
		return mapError(err)
	}

	log.Info().Uint64("course", id).Int("section", sec.Number).
		Str("user", username(c)).Msg("section added")

	return c.Redirect(course.SectionAnchorURL(id, sec.Number))
}

// params parses the course id and section number route parameters.
func params(c *fiber.Ctx) (uint64, int, error) {
	id, err := courseID(c)
	if err != nil {
		return 0, 0, err
	}

	n, err := sectionNumber(c)
	if err != nil {
		return 0, 0, err
	}

	return id, n, nil
}

func username(c *fiber.Ctx) string {
	name, _ := c.Locals(auth.LocalUsername).(string)

	return name
}
