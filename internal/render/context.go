// Package render turns a course snapshot into the view models consumed by
// the course page templates. It owns no state: everything a page needs,
// including the clock and the localizer, travels in a Context.
package render

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mkeenan750/snapcourse/internal/availability"
	"github.com/mkeenan750/snapcourse/internal/course"
	"github.com/mkeenan750/snapcourse/internal/db/models"
)

// Theme holds the site settings affecting course pages.
type Theme struct {
	// EditorHints shows the "Untitled topic" link on untitled sections.
	EditorHints bool
	Policy      course.Policy
	// ModuleTypes are the activity types offered by the add activity control.
	ModuleTypes []string
}

// Context is everything needed to render one course page for one viewer.
type Context struct {
	Course course.Course
	// Sections is indexed by section number and includes stealth sections.
	Sections []course.SectionInfo
	// Modules maps a section number to its activities, in display order.
	Modules      map[int][]models.Module
	Rights       course.Rights
	Editing      bool
	UserFullName string
	T            course.Translator
	CSRFToken    string
	Theme        Theme
	Now          time.Time
}

// Snapshot is a course as loaded from the database and evaluated for a viewer.
type Snapshot struct {
	Course   course.Course
	Sections []course.SectionInfo
	Modules  map[int][]models.Module
}

// NewSnapshot evaluates visibility and availability of every section for a
// viewer holding rights at now. Rows are expected ordered by number; gaps are
// filled with hidden sections so the slice stays indexed by number.
func NewSnapshot(
	c *models.Course,
	sections []models.Section,
	modules []models.Module,
	rights course.Rights,
	now time.Time,
	tr course.Translator,
) Snapshot {
	snap := Snapshot{
		Course: course.Course{
			ID:             c.ID,
			ShortName:      c.ShortName,
			FullName:       c.FullName,
			Format:         course.Format(c.Format),
			NumSections:    c.NumSections,
			HiddenSections: c.HiddenSections,
			Marker:         c.Marker,
			StartDate:      c.StartDate,
		},
		Modules: make(map[int][]models.Module),
	}

	for _, m := range modules {
		snap.Modules[m.SectionNumber] = append(snap.Modules[m.SectionNumber], m)
	}

	size := c.NumSections + 1
	if n := len(sections); n > 0 && sections[n-1].Number+1 > size {
		size = sections[n-1].Number + 1
	}

	snap.Sections = make([]course.SectionInfo, size)
	for i := range snap.Sections {
		snap.Sections[i] = course.SectionInfo{Number: i, Missing: true}
	}

	for _, s := range sections {
		if s.Number < 0 || s.Number >= size {
			continue
		}

		snap.Sections[s.Number] = sectionInfo(c.ID, s, len(snap.Modules[s.Number]), rights, now, tr)
	}

	return snap
}

func sectionInfo(
	courseID uint64,
	s models.Section,
	moduleCount int,
	rights course.Rights,
	now time.Time,
	tr availability.Translator,
) course.SectionInfo {
	info := course.SectionInfo{
		ID:          s.ID,
		Number:      s.Number,
		Name:        s.Name,
		Summary:     s.Summary,
		Visible:     s.Visible,
		ModuleCount: moduleCount,
	}

	res, err := availability.Evaluate(s.Availability, now, tr)
	if err != nil {
		log.Warn().Err(err).
			Uint64("course", courseID).
			Int("section", s.Number).
			Msg("ignoring invalid availability")
	}

	info.Conditional = res.Conditional

	// Hidden sections explain a restriction only to those who may see them.
	if s.Visible || rights.ViewHidden {
		info.AvailableInfo = res.Info
	}

	info.UserVisible = rights.ViewHidden || (s.Visible && res.Available)

	return info
}

// Context builds the render context of the snapshot.
func (s Snapshot) Context(rights course.Rights, tr course.Translator, theme Theme, now time.Time) *Context {
	return &Context{
		Course:   s.Course,
		Sections: s.Sections,
		Modules:  s.Modules,
		Rights:   rights,
		T:        tr,
		Theme:    theme,
		Now:      now,
	}
}

// viewer is the neighbour resolution context of the page.
func (ctx *Context) viewer() course.Viewer {
	return course.NewViewer(ctx.Rights.ViewHidden, ctx.Course)
}

func (ctx *Context) section(number int) (course.SectionInfo, bool) {
	if number < 0 || number >= len(ctx.Sections) || ctx.Sections[number].Missing {
		return course.SectionInfo{}, false
	}

	return ctx.Sections[number], true
}
