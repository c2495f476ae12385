package render

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mkeenan750/snapcourse/internal/course"
	"github.com/mkeenan750/snapcourse/internal/db/models"
	"github.com/mkeenan750/snapcourse/internal/i18n"
)

var (
	now      = time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)
	student  = course.Rights{}
	teacher  = course.Rights{ViewHidden: true, SectionVisibility: true, MoveSections: true, Update: true, ManageActivities: true}
	theme    = Theme{EditorHints: true, Policy: course.DefaultPolicy, ModuleTypes: []string{"forum", "page"}}
	restrict = `{"op":"&","show":true,"c":[{"type":"date","d":">=","t":1893456000}]}`
)

func strPtr(s string) *string { return &s }

func localizer(t *testing.T) *i18n.Localizer {
	t.Helper()

	b, err := i18n.New("en", nil)
	require.NoError(t, err)

	return b.Localizer(language.English)
}

func fixture() (*models.Course, []models.Section, []models.Module) {
	c := &models.Course{
		ID:          7,
		ShortName:   "bio",
		FullName:    "Biology",
		Format:      "topics",
		NumSections: 4,
		Marker:      4,
	}

	sections := []models.Section{
		{ID: 70, CourseID: 7, Number: 0, Summary: "<p>Hi</p><script>alert(1)</script>", Visible: true},
		{ID: 71, CourseID: 7, Number: 1, Visible: true},
		{ID: 72, CourseID: 7, Number: 2, Visible: false},
		{ID: 73, CourseID: 7, Number: 3, Visible: true, Availability: restrict},
		{ID: 74, CourseID: 7, Number: 4, Name: strPtr("Wrap up"), Visible: true},
		{ID: 75, CourseID: 7, Number: 5, Visible: true},
	}

	modules := []models.Module{
		{ID: 1, CourseID: 7, SectionNumber: 1, Name: "Discussion", ModName: "forum", Visible: true},
		{ID: 2, CourseID: 7, SectionNumber: 1, Name: "Answers", ModName: "resource", FileKey: "k", Visible: false},
		{ID: 3, CourseID: 7, SectionNumber: 3, Name: "Exam", ModName: "quiz", Visible: true},
		{ID: 4, CourseID: 7, SectionNumber: 5, Name: "Lost", ModName: "page", Visible: true},
	}

	return c, sections, modules
}

func newContext(t *testing.T, rights course.Rights, mutate func(*models.Course)) *Context {
	t.Helper()

	c, sections, modules := fixture()
	if mutate != nil {
		mutate(c)
	}

	tr := localizer(t)
	ctx := NewSnapshot(c, sections, modules, rights, now, tr).Context(rights, tr, theme, now)
	ctx.UserFullName = "Ada Lovelace"
	ctx.CSRFToken = "token"

	return ctx
}

func numbers(views []SectionView) []int {
	out := make([]int, 0, len(views))
	for _, v := range views {
		out = append(out, v.Number)
	}

	return out
}

func TestNewSnapshot(t *testing.T) {
	ctx := newContext(t, student, nil)

	require.Len(t, ctx.Sections, 6)
	assert.True(t, ctx.Sections[1].UserVisible)
	assert.False(t, ctx.Sections[2].UserVisible)
	assert.Empty(t, ctx.Sections[2].AvailableInfo)

	s3 := ctx.Sections[3]
	assert.True(t, s3.Conditional)
	assert.False(t, s3.UserVisible)
	assert.Equal(t, "Available from 1 January 2030, 00:00", s3.AvailableInfo)

	assert.Equal(t, 2, ctx.Sections[1].ModuleCount)
	assert.Equal(t, 1, ctx.Sections[5].ModuleCount)

	ctx = newContext(t, teacher, nil)
	assert.True(t, ctx.Sections[2].UserVisible)
	assert.True(t, ctx.Sections[3].UserVisible)
	assert.NotEmpty(t, ctx.Sections[3].AvailableInfo)
}

func TestNewSnapshot_FillsGaps(t *testing.T) {
	c, sections, _ := fixture()
	sections = append(sections[:2], sections[3:]...)

	snap := NewSnapshot(c, sections, nil, student, now, localizer(t))

	require.Len(t, snap.Sections, 6)
	assert.Equal(t, 2, snap.Sections[2].Number)
	assert.False(t, snap.Sections[2].Visible)
	assert.False(t, snap.Sections[2].UserVisible)
	assert.True(t, snap.Sections[2].Missing)
	assert.False(t, snap.Sections[3].Missing)
}

func TestNewSnapshot_GapsAreNeverTargets(t *testing.T) {
	c, sections, modules := fixture()
	sections = append(sections[:2], sections[3:]...)

	tr := localizer(t)
	ctx := NewSnapshot(c, sections, modules, teacher, now, tr).Context(teacher, tr, theme, now)

	assert.NotContains(t, numbers(ctx.MultipleSectionPage().Sections), 2)

	footer := ctx.FooterNav(ctx.Sections[1])
	require.NotNil(t, footer.Next)
	assert.Equal(t, "/course/7#section-3", footer.Next.URL)

	nav := ctx.NavLinks(3)
	require.NotNil(t, nav.Previous)
	assert.Equal(t, "/course/7?section=1", nav.Previous.URL)

	_, err := ctx.SingleSectionPage(2)
	require.ErrorIs(t, err, ErrSectionNotFound)
}

func TestNewSnapshot_HiddenAndConditional(t *testing.T) {
	c, sections, modules := fixture()
	c.HiddenSections = true
	sections[3].Visible = false

	tr := localizer(t)

	ctx := NewSnapshot(c, sections, modules, student, now, tr).Context(student, tr, theme, now)
	s3 := ctx.Sections[3]
	assert.True(t, s3.Conditional)
	assert.False(t, s3.UserVisible)
	assert.Empty(t, s3.AvailableInfo)
	assert.NotContains(t, numbers(ctx.MultipleSectionPage().Sections), 3)

	// neither a footer target nor reachable as a page
	footer := ctx.FooterNav(ctx.Sections[1])
	require.NotNil(t, footer.Next)
	assert.Equal(t, "/course/7#section-4", footer.Next.URL)

	_, err := ctx.SingleSectionPage(3)
	require.ErrorIs(t, err, ErrSectionUnavailable)

	ctx = NewSnapshot(c, sections, modules, teacher, now, tr).Context(teacher, tr, theme, now)
	assert.Equal(t, "Available from 1 January 2030, 00:00", ctx.Sections[3].AvailableInfo)
	assert.Contains(t, numbers(ctx.MultipleSectionPage().Sections), 3)
}

func TestNewSnapshot_InvalidAvailability(t *testing.T) {
	c, sections, _ := fixture()
	sections[1].Availability = "{not json"

	snap := NewSnapshot(c, sections, nil, student, now, localizer(t))

	assert.True(t, snap.Sections[1].UserVisible)
	assert.False(t, snap.Sections[1].Conditional)
}

func TestMultipleSectionPage_Student(t *testing.T) {
	page := newContext(t, student, nil).MultipleSectionPage()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, numbers(page.Sections))
	assert.Nil(t, page.AddSection)
	assert.Empty(t, page.Stealth)

	s1 := page.Sections[1]
	assert.Equal(t, []ModuleView{{ID: 1, Name: "Discussion", ModName: "forum"}}, s1.Modules)
	assert.Nil(t, s1.AddModule)
	assert.Empty(t, s1.Header.Controls)
	assert.Empty(t, s1.Header.EditSummaryURL)
	require.NotNil(t, s1.Footer)
	require.NotNil(t, s1.Footer.Previous)
	assert.Equal(t, "Introduction", s1.Footer.Previous.Name)
	assert.Equal(t, "/course/7#section-0", s1.Footer.Previous.URL)
	assert.Equal(t, "Previous section", s1.Footer.Previous.Guide)
	require.NotNil(t, s1.Footer.Next)
	assert.Equal(t, "/course/7#section-2", s1.Footer.Next.URL)
	assert.True(t, s1.Footer.Next.Dimmed)

	s2 := page.Sections[2]
	assert.True(t, s2.Placeholder)
	assert.Equal(t, "Not available", s2.PlaceholderText)
	assert.Equal(t, "section main clearfix hidden", s2.Header.Classes)

	s3 := page.Sections[3]
	assert.True(t, s3.ShowContent)
	assert.Empty(t, s3.Modules)
	assert.Equal(t, []string{"Available from 1 January 2030, 00:00"}, s3.Header.Messages)

	s4 := page.Sections[4]
	assert.Equal(t, "section main clearfix current", s4.Header.Classes)
	assert.Equal(t, "Wrap up", s4.Header.Title)
	require.NotNil(t, s4.Footer)
	assert.Nil(t, s4.Footer.Next)
}

func TestMultipleSectionPage_HiddenSectionsInvisible(t *testing.T) {
	ctx := newContext(t, student, func(c *models.Course) { c.HiddenSections = true })
	page := ctx.MultipleSectionPage()

	assert.Equal(t, []int{0, 1, 3, 4}, numbers(page.Sections))
	assert.Equal(t, "/course/7#section-3", page.Sections[1].Footer.Next.URL)

	ctx.Theme.Policy = course.Policy{DiscloseUnavailable: false}
	page = ctx.MultipleSectionPage()

	assert.Equal(t, "/course/7#section-4", page.Sections[1].Footer.Next.URL)
	assert.Equal(t, "/course/7#section-1", page.Sections[3].Footer.Previous.URL)
}

func TestMultipleSectionPage_Editing(t *testing.T) {
	ctx := newContext(t, teacher, nil)
	ctx.Editing = true

	page := ctx.MultipleSectionPage()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, numbers(page.Sections))

	for _, s := range page.Sections {
		assert.Nil(t, s.Footer, "section %d", s.Number)
		assert.False(t, s.Header.TabIndex)
	}

	s1 := page.Sections[1]
	kinds := make([]course.ControlKind, 0)
	for _, c := range s1.Header.Controls {
		kinds = append(kinds, c.Kind)
	}

	assert.Equal(t, []course.ControlKind{course.ControlHide, course.ControlDelete, course.ControlMoveDown}, kinds)
	assert.Equal(t, "Hide topic", s1.Header.Controls[0].Title)
	assert.Equal(t, "Topic actions", s1.Header.ControlsLabel)
	assert.Len(t, s1.Modules, 2)
	assert.Equal(t, "/course/7/module/2/file", s1.Modules[1].URL)
	assert.True(t, s1.Modules[1].Dimmed)

	require.NotNil(t, s1.AddModule)
	assert.Equal(t, "/course/7/section/1/modules", s1.AddModule.URL)
	assert.Equal(t, "/course/7/section/1/upload", s1.AddModule.UploadURL)
	assert.Equal(t, "Drop files here to add them to Topic 1", s1.AddModule.DropLabel)
	assert.Equal(t, "token", s1.AddModule.CSRFToken)

	assert.Equal(t, []string{"Hidden from students"}, page.Sections[2].Header.Messages)

	require.Len(t, page.Stealth, 1)
	assert.Equal(t, "Orphaned activities (section 5)", page.Stealth[0].Title)
	assert.Equal(t, "Lost", page.Stealth[0].Modules[0].Name)

	require.NotNil(t, page.AddSection)
	assert.Equal(t, "/course/7/sections", page.AddSection.URL)
	assert.Equal(t, "Create section", page.AddSection.Submit)
}

func TestSectionHeader(t *testing.T) {
	ctx := newContext(t, teacher, nil)

	intro := ctx.SectionHeader(ctx.Sections[0], false)
	assert.Equal(t, "section-0", intro.ID)
	assert.Equal(t, "section main clearfix", intro.Classes)
	assert.Equal(t, "Introduction", intro.Title)
	assert.Equal(t, "General", intro.AriaLabel)
	assert.Equal(t, "sectionname accesshide", intro.TitleClasses)
	assert.Equal(t, "<p>Hi</p>", string(intro.Summary))
	assert.Empty(t, intro.Controls)

	untitled := ctx.SectionHeader(ctx.Sections[1], false)
	assert.Equal(t, "sectionname", untitled.TitleClasses)
	assert.Equal(t, "/course/7/section/1/edit?sr=0", untitled.UntitledURL)
	assert.Equal(t, "Untitled topic", untitled.UntitledText)
	assert.Equal(t, "Edit topic", untitled.UntitledTitle)
	assert.Equal(t, "Add a summary to this topic", string(untitled.Summary))
	assert.Equal(t, "/course/7/section/1/edit?sr=0", untitled.EditSummaryURL)

	onPage := ctx.SectionHeader(ctx.Sections[1], true)
	assert.Equal(t, "sectionname accesshide", onPage.TitleClasses)
	assert.Equal(t, "/course/7/section/1/edit?sr=1", onPage.EditSummaryURL)

	named := ctx.SectionHeader(ctx.Sections[4], false)
	assert.Empty(t, named.UntitledURL)

	ctx.Theme.EditorHints = false
	assert.Empty(t, ctx.SectionHeader(ctx.Sections[1], false).UntitledURL)

	ctx.Sections[0].Summary = ""
	assert.Equal(t,
		"Welcome Ada Lovelace, add an introduction to this course",
		string(ctx.SectionHeader(ctx.Sections[0], false).Summary))
}

func TestSectionHeader_StudentWithoutEditorUI(t *testing.T) {
	ctx := newContext(t, student, nil)

	h := ctx.SectionHeader(ctx.Sections[1], false)
	assert.Empty(t, h.UntitledURL)
	assert.Empty(t, string(h.Summary))
	assert.True(t, h.TabIndex)
}

func TestSingleSectionPage(t *testing.T) {
	ctx := newContext(t, student, nil)

	page, err := ctx.SingleSectionPage(1)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Section.Number)
	assert.Nil(t, page.Section.Footer)
	require.NotNil(t, page.Intro)
	assert.Equal(t, 0, page.Intro.Number)

	want := NavLinks{
		Previous: &NavTarget{URL: "/course/7?section=0", Name: "General", Guide: "Previous section"},
		Next:     &NavTarget{URL: "/course/7?section=2", Name: "Topic 2", Guide: "Next section", Dimmed: true},
	}
	if diff := cmp.Diff(want, page.Nav); diff != "" {
		t.Errorf("nav links mismatch (-want +got):\n%s", diff)
	}

	page, err = ctx.SingleSectionPage(3)
	require.NoError(t, err)
	assert.Empty(t, page.Section.Modules)
	assert.NotEmpty(t, page.Section.Header.Messages)

	// collapsed hidden sections render their placeholder
	page, err = ctx.SingleSectionPage(2)
	require.NoError(t, err)
	assert.True(t, page.Section.Placeholder)
	assert.Empty(t, page.Section.Modules)
	require.NotNil(t, page.Nav.Previous)
	assert.Equal(t, "/course/7?section=1", page.Nav.Previous.URL)

	ctx = newContext(t, student, func(c *models.Course) { c.HiddenSections = true })
	_, err = ctx.SingleSectionPage(2)
	require.ErrorIs(t, err, ErrSectionUnavailable)

	_, err = ctx.SingleSectionPage(5)
	require.ErrorIs(t, err, ErrSectionNotFound)

	_, err = ctx.SingleSectionPage(-1)
	require.ErrorIs(t, err, ErrSectionNotFound)
}

func TestSingleSectionPage_Teacher(t *testing.T) {
	ctx := newContext(t, teacher, nil)

	page, err := ctx.SingleSectionPage(2)
	require.NoError(t, err)

	for _, c := range page.Section.Header.Controls {
		assert.NotEqual(t, course.ControlMoveUp, c.Kind)
		assert.NotEqual(t, course.ControlMoveDown, c.Kind)
	}

	page, err = ctx.SingleSectionPage(4)
	require.NoError(t, err)
	assert.Nil(t, page.Nav.Next)
	assert.Equal(t, "/course/7?section=3", page.Nav.Previous.URL)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, `<a href="https://example.org" rel="nofollow">x</a>`,
		string(Sanitize(`<a href="https://example.org" onclick="evil()">x</a>`)))
}
