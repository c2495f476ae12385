// Package course holds the presentation rules of a course page: which
// sections a viewer may reach, how sections are labelled, which editing
// controls apply to them and where their links point.
//
// Everything in this package is pure. Callers hand in an immutable snapshot
// of the course and its sections already evaluated for the current viewer.
package course

import "time"

// Format is the course format deciding how untitled sections are labelled.
type Format string

const (
	// FormatTopics labels sections "Topic N".
	FormatTopics Format = "topics"
	// FormatWeeks labels sections by their week date range.
	FormatWeeks Format = "weeks"
)

// Course is the read-only course snapshot used for rendering.
type Course struct {
	ID          uint64
	ShortName   string
	FullName    string
	Format      Format
	NumSections int
	// HiddenSections set means hidden sections are completely invisible to
	// viewers without the view-hidden capability. Unset shows them collapsed.
	HiddenSections bool
	// Marker is the highlighted topic, 0 for none.
	Marker    int
	StartDate time.Time
}

// SectionInfo is a section as seen by the current viewer.
type SectionInfo struct {
	ID     uint64
	Number int
	// Name is nil for sections without a custom title.
	Name    *string
	Summary string
	// Visible is false when an editor hid the section.
	Visible bool
	// UserVisible reports whether the current viewer may see the content.
	UserVisible bool
	// AvailableInfo explains why the section is restricted, when that may be
	// disclosed.
	AvailableInfo string
	// Conditional is set when the section carries availability conditions.
	Conditional bool
	ModuleCount int
	// Missing marks a position in the section list with no stored section.
	Missing bool
}

// IsStealth reports whether s lies beyond the configured section count.
func (s SectionInfo) IsStealth(c Course) bool {
	return s.Number > c.NumSections
}

// HasName reports whether the section carries a custom title.
func (s SectionInfo) HasName() bool {
	return s.Name != nil && *s.Name != ""
}

// Rights are the capabilities of the current viewer relevant to sections.
type Rights struct {
	ViewHidden        bool
	SectionVisibility bool
	MoveSections      bool
	Update            bool
	ManageActivities  bool
}

// Translator looks up localized strings.
type Translator interface {
	T(messageID string, data map[string]any) string
}
