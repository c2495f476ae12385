package auth

import "github.com/mkeenan750/snapcourse/internal/course"

// Capabilities known to the site.
const (
	// CapView allows viewing course pages.
	CapView = "course.view"
	// CapViewHiddenSections allows viewing hidden and restricted sections.
	CapViewHiddenSections = "course.viewhiddensections"
	// CapSectionVisibility allows hiding and showing sections.
	CapSectionVisibility = "course.sectionvisibility"
	// CapMoveSections allows reordering sections.
	CapMoveSections = "course.movesections"
	// CapUpdate allows editing course sections and turning editing on.
	CapUpdate = "course.update"
	// CapManageActivities allows adding and removing activities.
	CapManageActivities = "course.manageactivities"
	// CapAdminSettings allows changing site settings.
	CapAdminSettings = "admin.settings"
)

// Definition describes a capability for seeding.
type Definition struct {
	Name        string
	Resource    string
	Action      string
	Description string
}

// Definitions lists every capability.
var Definitions = []Definition{
	{CapView, "course", "view", "View course pages"},
	{CapViewHiddenSections, "course", "viewhiddensections", "View hidden and restricted sections"},
	{CapSectionVisibility, "course", "sectionvisibility", "Hide and show sections"},
	{CapMoveSections, "course", "movesections", "Move sections"},
	{CapUpdate, "course", "update", "Edit course sections"},
	{CapManageActivities, "course", "manageactivities", "Add and remove activities"},
	{CapAdminSettings, "admin", "settings", "Manage site settings"},
}

// Capabilities is the set of capabilities held by a user.
type Capabilities map[string]bool

// NewCapabilities builds a set from names.
func NewCapabilities(names ...string) Capabilities {
	caps := make(Capabilities, len(names))
	for _, n := range names {
		caps[n] = true
	}

	return caps
}

// Has reports whether the capability is held. A nil set holds nothing.
func (c Capabilities) Has(name string) bool {
	return c[name]
}

// CourseRights maps the capabilities onto the section editing rights.
func (c Capabilities) CourseRights() course.Rights {
	return course.Rights{
		ViewHidden:        c.Has(CapViewHiddenSections),
		SectionVisibility: c.Has(CapSectionVisibility),
		MoveSections:      c.Has(CapMoveSections),
		Update:            c.Has(CapUpdate),
		ManageActivities:  c.Has(CapManageActivities),
	}
}
