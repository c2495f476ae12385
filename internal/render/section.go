package render

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mkeenan750/snapcourse/internal/course"
	"github.com/mkeenan750/snapcourse/internal/db/models"
)

var summaryPolicy = bluemonday.UGCPolicy()

// Sanitize cleans user supplied HTML for output.
func Sanitize(s string) template.HTML {
	return template.HTML(summaryPolicy.Sanitize(s)) //nolint:gosec
}

// ControlView is an editing control with its localized title.
type ControlView struct {
	course.Control
	Title string
}

// Header is the heading block of a listed section.
type Header struct {
	ID        string
	Number    int
	Classes   string
	TabIndex  bool
	AriaLabel string

	Title        string
	TitleClasses string
	// UntitledURL is set when the title is replaced by the editor hint link.
	UntitledURL   string
	UntitledTitle string
	UntitledText  string

	Controls      []ControlView
	ControlsLabel string

	Messages []string

	Summary          template.HTML
	EditSummaryURL   string
	EditSummaryTitle string
}

// ModuleView is one activity of a section.
type ModuleView struct {
	ID      uint64
	Name    string
	ModName string
	// URL is empty for activities without downloadable content.
	URL    string
	Dimmed bool
}

// NavTarget is a link to a neighbouring section.
type NavTarget struct {
	URL    string
	Name   string
	Guide  string
	Dimmed bool
}

// Footer is the previous and next navigation under a listed section.
type Footer struct {
	Previous *NavTarget
	Next     *NavTarget
}

// NavLinks is the previous and next navigation of a single-section page.
type NavLinks struct {
	Previous *NavTarget
	Next     *NavTarget
}

// SectionView is a section as it appears in a page.
type SectionView struct {
	Number int
	Header Header
	// Placeholder renders a collapsed "not available" item instead.
	Placeholder     bool
	PlaceholderText string
	ShowContent     bool
	Modules         []ModuleView
	AddModule       *AddModuleControl
	Footer          *Footer
}

// SectionHeader builds the header of s.
func (ctx *Context) SectionHeader(s course.SectionInfo, onSectionPage bool) Header {
	var (
		c  = ctx.Course
		tr = ctx.T
		h  = Header{
			ID:        "section-" + strconv.Itoa(s.Number),
			Number:    s.Number,
			TabIndex:  !ctx.Editing,
			AriaLabel: course.SectionName(c, s, tr),
			Title:     course.DisplayName(c, s, tr),
		}
	)

	classes := []string{"section", "main", "clearfix"}

	switch {
	case s.Number == 0:
	case !s.Visible:
		classes = append(classes, "hidden")
	case course.IsCurrent(c, s, ctx.Now):
		classes = append(classes, "current")
	}

	h.Classes = strings.Join(classes, " ")

	h.TitleClasses = "sectionname"
	if !showTitle(s, onSectionPage) {
		h.TitleClasses += " accesshide"
	}

	if ctx.Theme.EditorHints && ctx.Rights.Update && course.IsUntitledTopic(c, s, tr) {
		h.UntitledURL = course.EditSectionURL(c.ID, s.Number, returnTo(s, onSectionPage))
		h.UntitledTitle = tr.T(course.MsgEditCourseTopic, nil)
		h.UntitledText = tr.T(course.MsgDefaultTopicTitle, nil)
	}

	if ctx.Rights.Update {
		for _, control := range course.EditControls(c, s, ctx.Rights, onSectionPage) {
			h.Controls = append(h.Controls, ControlView{Control: control, Title: tr.T(control.TitleID, nil)})
		}

		if len(h.Controls) > 0 {
			h.ControlsLabel = tr.T(course.MsgTopicActions, nil)
		}
	}

	if !s.Visible && s.Number > 0 && ctx.Rights.ViewHidden {
		h.Messages = append(h.Messages, tr.T(course.MsgHiddenFromStudents, nil))
	}

	if s.AvailableInfo != "" {
		h.Messages = append(h.Messages, s.AvailableInfo)
	}

	h.Summary = Sanitize(s.Summary)

	if ctx.Rights.Update {
		if strings.TrimSpace(string(h.Summary)) == "" {
			h.Summary = template.HTML(template.HTMLEscapeString(ctx.defaultSummary(s))) //nolint:gosec
		}

		h.EditSummaryURL = course.EditSectionURL(c.ID, s.Number, returnTo(s, onSectionPage))
		h.EditSummaryTitle = tr.T(course.MsgEditCourseTopic, nil)
	}

	return h
}

func (ctx *Context) defaultSummary(s course.SectionInfo) string {
	if s.Number == 0 {
		return ctx.T.T(course.MsgDefaultIntroSummary, map[string]any{"Name": ctx.UserFullName})
	}

	return ctx.T.T(course.MsgDefaultSummary, nil)
}

// showTitle tells whether the section title is visible or only announced to
// screen readers.
func showTitle(s course.SectionInfo, onSectionPage bool) bool {
	if onSectionPage {
		return s.Number == 0 && s.HasName()
	}

	return s.Number != 0 || s.HasName()
}

func returnTo(s course.SectionInfo, onSectionPage bool) int {
	if onSectionPage {
		return s.Number
	}

	return 0
}

// FooterNav is the navigation printed under a listed section.
func (ctx *Context) FooterNav(s course.SectionInfo) *Footer {
	n := course.FindNeighbors(ctx.Sections, s.Number, ctx.Course.NumSections, ctx.viewer(), ctx.Theme.Policy)

	f := &Footer{}

	if n.Previous != nil {
		f.Previous = ctx.footerTarget(*n.Previous, course.MsgPreviousSection)
	}

	if n.Next != nil {
		f.Next = ctx.footerTarget(*n.Next, course.MsgNextSection)
	}

	return f
}

func (ctx *Context) footerTarget(s course.SectionInfo, guideID string) *NavTarget {
	return &NavTarget{
		URL:    course.SectionAnchorURL(ctx.Course.ID, s.Number),
		Name:   course.NavName(ctx.Course, s, ctx.T),
		Guide:  ctx.T.T(guideID, nil),
		Dimmed: !s.Visible,
	}
}

// NavLinks is the navigation of the single-section page of number.
func (ctx *Context) NavLinks(number int) NavLinks {
	n := course.FindNeighbors(ctx.Sections, number, ctx.Course.NumSections, ctx.viewer(), ctx.Theme.Policy)

	var links NavLinks

	if n.Previous != nil {
		links.Previous = ctx.pageTarget(*n.Previous, course.MsgPreviousSection)
	}

	if n.Next != nil {
		links.Next = ctx.pageTarget(*n.Next, course.MsgNextSection)
	}

	return links
}

func (ctx *Context) pageTarget(s course.SectionInfo, guideID string) *NavTarget {
	return &NavTarget{
		URL:    course.SectionPageURL(ctx.Course.ID, s.Number),
		Name:   course.SectionName(ctx.Course, s, ctx.T),
		Guide:  ctx.T.T(guideID, nil),
		Dimmed: !s.Visible,
	}
}

// ModuleViews lists the activities of section number the viewer may see.
func (ctx *Context) ModuleViews(number int) []ModuleView {
	mods := ctx.Modules[number]
	out := make([]ModuleView, 0, len(mods))

	for _, m := range mods {
		if !m.Visible && !ctx.Rights.ViewHidden && !ctx.Rights.ManageActivities {
			continue
		}

		out = append(out, moduleView(ctx.Course.ID, m))
	}

	return out
}

func moduleView(courseID uint64, m models.Module) ModuleView {
	v := ModuleView{
		ID:      m.ID,
		Name:    m.Name,
		ModName: m.ModName,
		Dimmed:  !m.Visible,
	}

	if m.FileKey != "" {
		v.URL = course.ModuleFileURL(courseID, m.ID)
	}

	return v
}

// SectionView builds a listed section with header, activities and, outside
// editing mode on the course page, the footer navigation.
func (ctx *Context) SectionView(s course.SectionInfo, onSectionPage bool) SectionView {
	v := SectionView{
		Number:      s.Number,
		Header:      ctx.SectionHeader(s, onSectionPage),
		ShowContent: course.ShowsContent(s),
	}

	if !v.ShowContent {
		return v
	}

	if s.UserVisible {
		v.Modules = ctx.ModuleViews(s.Number)
		v.AddModule = ctx.AddModule(s)
	}

	if !onSectionPage && !ctx.Editing {
		v.Footer = ctx.FooterNav(s)
	}

	return v
}

// PlaceholderView is the collapsed item of a hidden section.
func (ctx *Context) PlaceholderView(s course.SectionInfo) SectionView {
	return SectionView{
		Number: s.Number,
		Header: Header{
			ID:           "section-" + strconv.Itoa(s.Number),
			Number:       s.Number,
			Classes:      "section main clearfix hidden",
			TabIndex:     !ctx.Editing,
			AriaLabel:    course.SectionName(ctx.Course, s, ctx.T),
			Title:        course.DisplayName(ctx.Course, s, ctx.T),
			TitleClasses: "sectionname",
		},
		Placeholder:     true,
		PlaceholderText: ctx.T.T(course.MsgNotAvailable, nil),
	}
}
