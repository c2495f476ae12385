package course

// ControlKind identifies a section editing control.
type ControlKind string

const (
	ControlHide     ControlKind = "hide"
	ControlShow     ControlKind = "show"
	ControlDelete   ControlKind = "delete"
	ControlMoveUp   ControlKind = "moveup"
	ControlMoveDown ControlKind = "movedown"
)

// Control is one editing control of a section header. Delete is a link to
// a confirmation page, every other control is submitted as a POST form.
type Control struct {
	Kind    ControlKind
	URL     string
	Post    bool
	TitleID string
	Icon    string
	Class   string
}

// CanDeleteSection reports whether s may be deleted. Section 0 never can;
// sections with activities additionally need the manage activities right.
func CanDeleteSection(s SectionInfo, r Rights) bool {
	if s.Number == 0 || !r.Update {
		return false
	}

	return s.ModuleCount == 0 || r.ManageActivities
}

// EditControls lists the editing controls for s. Stealth sections only get
// delete; section pages never get move controls.
func EditControls(c Course, s SectionInfo, r Rights, onSectionPage bool) []Control {
	if s.Number == 0 {
		return []Control{}
	}

	var (
		stealth  = s.IsStealth(c)
		sr       = 0
		controls = make([]Control, 0, 4) //nolint:mnd
	)

	if onSectionPage {
		sr = s.Number
	}

	if !stealth && r.SectionVisibility {
		if s.Visible {
			controls = append(controls, Control{
				Kind:    ControlHide,
				URL:     VisibilityURL(c.ID, s.Number, sr),
				Post:    true,
				TitleID: MsgHideFromOthers,
				Icon:    "i/hide",
				Class:   "editing_showhide",
			})
		} else {
			controls = append(controls, Control{
				Kind:    ControlShow,
				URL:     VisibilityURL(c.ID, s.Number, sr),
				Post:    true,
				TitleID: MsgShowFromOthers,
				Icon:    "i/show",
				Class:   "editing_showhide",
			})
		}
	}

	if CanDeleteSection(s, r) {
		controls = append(controls, Control{
			Kind:    ControlDelete,
			URL:     DeleteURL(c.ID, s.Number, sr),
			TitleID: MsgDeleteSection,
			Icon:    "t/delete",
			Class:   "editing_delete",
		})
	}

	if !stealth && !onSectionPage && r.MoveSections {
		if s.Number > 1 {
			controls = append(controls, Control{
				Kind:    ControlMoveUp,
				URL:     MoveURL(c.ID, s.Number, -1),
				Post:    true,
				TitleID: MsgMoveUp,
				Icon:    "i/up",
				Class:   "moveup",
			})
		}

		if s.Number < c.NumSections {
			controls = append(controls, Control{
				Kind:    ControlMoveDown,
				URL:     MoveURL(c.ID, s.Number, 1),
				Post:    true,
				TitleID: MsgMoveDown,
				Icon:    "i/down",
				Class:   "movedown",
			})
		}
	}

	return controls
}
