package course

// Viewer is the per-request view on hidden sections.
type Viewer struct {
	CanViewHidden bool
}

// NewViewer resolves the viewer context for c. Hidden sections count as
// viewable either through the capability or because the course only
// collapses them.
func NewViewer(hasViewHiddenCapability bool, c Course) Viewer {
	return Viewer{CanViewHidden: hasViewHiddenCapability || !c.HiddenSections}
}

// Policy holds the site decisions on what restricted sections reveal.
type Policy struct {
	// DiscloseUnavailable links restricted sections that carry an
	// availability message instead of skipping them.
	DiscloseUnavailable bool
}

// DefaultPolicy discloses restricted sections that explain their restriction.
var DefaultPolicy = Policy{DiscloseUnavailable: true}

// CanReach reports whether s may be linked for this viewer.
func (v Viewer) CanReach(s SectionInfo, p Policy) bool {
	if s.Missing {
		return false
	}

	return v.CanViewHidden ||
		s.UserVisible ||
		(p.DiscloseUnavailable && s.AvailableInfo != "")
}

// Neighbors is the result of FindNeighbors. Missing neighbours are nil.
type Neighbors struct {
	Previous *SectionInfo
	Next     *SectionInfo
}

// FindNeighbors returns the nearest reachable section before and after
// current. sections must be indexed by section number. Only positions
// 0..numSections that exist in sections are considered; anything else is
// skipped, so an out of range current yields no neighbour on that side.
func FindNeighbors(sections []SectionInfo, current, numSections int, v Viewer, p Policy) Neighbors {
	var (
		n    Neighbors
		last = min(numSections, len(sections)-1)
	)

	for i := min(current-1, last); i >= 0; i-- {
		if v.CanReach(sections[i], p) {
			s := sections[i]
			n.Previous = &s

			break
		}
	}

	for i := max(current+1, 0); i <= last; i++ {
		if v.CanReach(sections[i], p) {
			s := sections[i]
			n.Next = &s

			break
		}
	}

	return n
}
