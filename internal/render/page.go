package render

import (
	"errors"

	"github.com/mkeenan750/snapcourse/internal/course"
)

var (
	// ErrSectionNotFound is returned for section pages outside the course.
	ErrSectionNotFound = errors.New("section not found")
	// ErrSectionUnavailable is returned when the viewer may not learn
	// anything about the requested section.
	ErrSectionUnavailable = errors.New("section not available")
)

// AddSectionForm is the form creating a new section at the end of the list.
type AddSectionForm struct {
	URL          string
	CSRFToken    string
	Heading      string
	NameLabel    string
	SummaryLabel string
	Submit       string
}

// AddModuleControl offers new activities and the file drop zone of a section.
type AddModuleControl struct {
	Section   int
	URL       string
	UploadURL string
	CSRFToken string
	Label     string
	Types     []string
	DropLabel string
}

// StealthView lists the orphaned activities of a section beyond the course
// section count.
type StealthView struct {
	Header  Header
	Title   string
	Modules []ModuleView
}

// MultipleSectionPage is the course page listing all sections.
type MultipleSectionPage struct {
	Course     course.Course
	Sections   []SectionView
	Stealth    []StealthView
	AddSection *AddSectionForm
}

// SingleSectionPage shows one section with navigation to its neighbours.
type SingleSectionPage struct {
	Course course.Course
	// Intro is section 0 shown above the section, nil when it is empty.
	Intro   *SectionView
	Section SectionView
	Nav     NavLinks
}

// AddModule builds the add activity control of s, nil when the viewer may
// not add activities or no activity types are configured.
func (ctx *Context) AddModule(s course.SectionInfo) *AddModuleControl {
	if !ctx.Rights.ManageActivities || len(ctx.Theme.ModuleTypes) == 0 {
		return nil
	}

	return &AddModuleControl{
		Section:   s.Number,
		URL:       course.AddModuleURL(ctx.Course.ID, s.Number),
		UploadURL: course.UploadURL(ctx.Course.ID, s.Number),
		CSRFToken: ctx.CSRFToken,
		Label:     ctx.T.T(course.MsgAddResource, nil),
		Types:     ctx.Theme.ModuleTypes,
		DropLabel: ctx.T.T(course.MsgDropZoneLabel, map[string]any{
			"Name": course.DisplayName(ctx.Course, s, ctx.T),
		}),
	}
}

// AddSection builds the new section form, nil outside editing mode or for
// viewers who may not update the course.
func (ctx *Context) AddSection() *AddSectionForm {
	if !ctx.Editing || !ctx.Rights.Update {
		return nil
	}

	return &AddSectionForm{
		URL:          course.AddSectionURL(ctx.Course.ID),
		CSRFToken:    ctx.CSRFToken,
		Heading:      ctx.T.T(course.MsgAddANewSection, nil),
		NameLabel:    ctx.T.T(course.MsgSectionName, nil),
		SummaryLabel: ctx.T.T(course.MsgSummary, nil),
		Submit:       ctx.T.T(course.MsgCreateSection, nil),
	}
}

// MultipleSectionPage lists every section the viewer may learn about, then
// the orphaned activities and the new section form for editors.
func (ctx *Context) MultipleSectionPage() MultipleSectionPage {
	page := MultipleSectionPage{
		Course:   ctx.Course,
		Sections: make([]SectionView, 0, len(ctx.Sections)),
	}

	for _, s := range ctx.Sections {
		switch course.Dispose(s, ctx.Course, ctx.Rights.ViewHidden) {
		case course.Skip:
			continue
		case course.Placeholder:
			page.Sections = append(page.Sections, ctx.PlaceholderView(s))
		case course.Show:
			page.Sections = append(page.Sections, ctx.SectionView(s, false))
		}
	}

	if ctx.Editing && ctx.Rights.Update {
		for _, s := range course.StealthWithContent(ctx.Sections, ctx.Course) {
			page.Stealth = append(page.Stealth, StealthView{
				Header:  ctx.SectionHeader(s, false),
				Title:   ctx.T.T(course.MsgOrphanedActivities, map[string]any{"Number": s.Number}),
				Modules: ctx.ModuleViews(s.Number),
			})
		}
	}

	page.AddSection = ctx.AddSection()

	return page
}

// SingleSectionPage renders section number on its own page.
func (ctx *Context) SingleSectionPage(number int) (SingleSectionPage, error) {
	s, ok := ctx.section(number)
	if !ok || s.IsStealth(ctx.Course) {
		return SingleSectionPage{}, ErrSectionNotFound
	}

	page := SingleSectionPage{
		Course: ctx.Course,
		Nav:    ctx.NavLinks(number),
	}

	switch {
	case !s.Visible && !ctx.Course.HiddenSections && !ctx.Rights.ViewHidden:
		// collapsed hidden sections keep their place in the navigation
		page.Section = ctx.PlaceholderView(s)

		return page, nil
	case !s.UserVisible && s.AvailableInfo == "":
		return SingleSectionPage{}, ErrSectionUnavailable
	}

	page.Section = ctx.SectionView(s, true)

	if number != 0 {
		if intro, found := ctx.section(0); found && intro.UserVisible &&
			(intro.Summary != "" || len(ctx.ModuleViews(0)) > 0) {
			view := ctx.SectionView(intro, true)
			page.Intro = &view
		}
	}

	return page, nil
}
