package course

// Disposition tells the multiple-section page what to do with a section.
type Disposition int

const (
	// Show renders the section header and, when reachable, its content.
	Show Disposition = iota
	// Skip leaves the section out of the listing.
	Skip
	// Placeholder renders a collapsed "not available" item.
	Placeholder
)

// String implements fmt.Stringer.
func (d Disposition) String() string {
	switch d {
	case Show:
		return "show"
	case Skip:
		return "skip"
	case Placeholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Dispose decides how s appears in the course listing for a viewer.
// hasViewHiddenCapability is the bare capability, not the course policy.
func Dispose(s SectionInfo, c Course, hasViewHiddenCapability bool) Disposition {
	if s.Missing || s.IsStealth(c) {
		return Skip
	}

	if hasViewHiddenCapability {
		return Show
	}

	switch {
	case !s.Conditional && c.HiddenSections && !s.Visible:
		return Skip
	case s.Conditional && !s.UserVisible && s.AvailableInfo == "":
		return Skip
	case !s.Conditional && !c.HiddenSections && !s.Visible:
		return Placeholder
	}

	return Show
}

// ShowsContent reports whether the activities of a listed section render.
func ShowsContent(s SectionInfo) bool {
	return s.UserVisible || s.AvailableInfo != ""
}

// StealthWithContent filters the stealth sections that still hold activities.
func StealthWithContent(sections []SectionInfo, c Course) []SectionInfo {
	out := make([]SectionInfo, 0)

	for _, s := range sections {
		if s.IsStealth(c) && s.ModuleCount > 0 {
			out = append(out, s)
		}
	}

	return out
}
