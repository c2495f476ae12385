package coursepage

import (
	"fmt"
	"mime"
	"mime/multipart"
	"path"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mkeenan750/snapcourse/internal/course"
	controller "github.com/mkeenan750/snapcourse/internal/db/controller/course"
	"github.com/mkeenan750/snapcourse/internal/db/models"
	"github.com/mkeenan750/snapcourse/internal/files"
)

const (
	// ModResource is the activity type of uploaded files.
	ModResource = "resource"

	uploadField = "files"
)

// ModuleForm is the activity chooser form.
type ModuleForm struct {
	ModName string `form:"modname" validate:"required,max=50"`
	Name    string `form:"name" validate:"required,max=255"`
}

// AddModule adds an activity of a configured type to a section.
func (s *Service) AddModule(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	form := ModuleForm{}
	if err = c.BodyParser(&form); err != nil {
		return invalidForm(c)
	}

	form.Name = strings.TrimSpace(form.Name)

	if err = s.validator.Struct(form); err != nil || !slices.Contains(s.cfg.Theme.ModuleTypes, form.ModName) {
		return invalidForm(c)
	}

	m := &models.Module{
		CourseID:      id,
		SectionNumber: n,
		Name:          form.Name,
		ModName:       form.ModName,
		Visible:       true,
	}

	if err = controller.AddModule(s.db, m); err != nil {
		return mapError(err)
	}

	log.Info().Uint64("course", id).Int("section", n).Str("modname", m.ModName).
		Str("user", username(c)).Msg("activity added")

	return c.Redirect(course.SectionAnchorURL(id, n))
}

// Upload stores the dropped files and adds a resource activity for each.
func (s *Service) Upload(c *fiber.Ctx) error {
	id, n, err := params(c)
	if err != nil {
		return err
	}

	if s.files == nil {
		return fiber.ErrServiceUnavailable
	}

	// the section must exist before anything is stored
	if _, err = controller.Section(s.db, id, n); err != nil {
		return mapError(err)
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File[uploadField]) == 0 {
		return invalidForm(c)
	}

	for _, fh := range form.File[uploadField] {
		if err = s.storeUpload(c, id, n, fh); err != nil {
			return mapError(err)
		}
	}

	return c.Redirect(course.SectionAnchorURL(id, n))
}

func (s *Service) storeUpload(c *fiber.Ctx, id uint64, n int, fh *multipart.FileHeader) error {
	key, err := files.Key(id, n, fh.Filename)
	if err != nil {
		return fmt.Errorf("failed to create file key: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	if err = s.files.Put(c.UserContext(), key, f, fh.Size, fh.Header.Get(fiber.HeaderContentType)); err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}

	m := &models.Module{
		CourseID:      id,
		SectionNumber: n,
		Name:          fh.Filename,
		ModName:       ModResource,
		Visible:       true,
		FileKey:       key,
	}

	if err = controller.AddModule(s.db, m); err != nil {
		s.removeFiles(c.UserContext(), []string{key})

		return err
	}

	log.Info().Uint64("course", id).Int("section", n).Str("file", fh.Filename).
		Str("user", username(c)).Msg("file uploaded")

	return nil
}

// File sends the file of a resource activity to viewers who may see it.
func (s *Service) File(c *fiber.Ctx) error {
	id, err := courseID(c)
	if err != nil {
		return err
	}

	mid, err := c.ParamsInt("mid")
	if err != nil || mid <= 0 {
		return fiber.ErrNotFound
	}

	m, err := controller.Module(s.db, id, uint64(mid))
	if err != nil {
		return mapError(err)
	}

	ctx, err := s.renderContext(c, id)
	if err != nil {
		return mapError(err)
	}

	sec, err := sectionOf(ctx, m.SectionNumber)
	if err != nil {
		return mapError(err)
	}

	canSee := sec.UserVisible && (m.Visible || ctx.Rights.ViewHidden || ctx.Rights.ManageActivities)
	if !canSee || m.FileKey == "" || s.files == nil {
		return fiber.ErrNotFound
	}

	rc, err := s.files.Open(c.UserContext(), m.FileKey)
	if err != nil {
		return mapError(err)
	}

	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": m.Name}))
	if ext := path.Ext(m.Name); ext != "" {
		c.Type(strings.TrimPrefix(ext, "."))
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}

	return c.SendStream(rc)
}
