package course

import (
	"strconv"
	"time"
)

const (
	weekDays       = 7
	weekDateLayout = "2 January"
)

// DefaultSectionName is the generated label of an untitled section.
func DefaultSectionName(c Course, number int, tr Translator) string {
	if number == 0 {
		return tr.T(MsgGeneral, nil)
	}

	if c.Format == FormatWeeks {
		start, end := WeekDates(c, number)

		return tr.T(MsgWeekRange, map[string]any{
			"Start": start.Format(weekDateLayout),
			"End":   end.AddDate(0, 0, -1).Format(weekDateLayout),
		})
	}

	return tr.T(MsgTopic, map[string]any{"Number": strconv.Itoa(number)})
}

// SectionName is the title of s, falling back to the generated label.
func SectionName(c Course, s SectionInfo, tr Translator) string {
	if s.HasName() {
		return *s.Name
	}

	return DefaultSectionName(c, s.Number, tr)
}

// DisplayName is the title used in headings, where the generic section 0
// title reads as "Introduction".
func DisplayName(c Course, s SectionInfo, tr Translator) string {
	if s.Number == 0 {
		return NavName(c, s, tr)
	}

	return SectionName(c, s, tr)
}

// NavName labels s as a footer navigation target. Any section titled
// "General" reads as "Introduction".
func NavName(c Course, s SectionInfo, tr Translator) string {
	name := SectionName(c, s, tr)
	if name == tr.T(MsgGeneral, nil) {
		return tr.T(MsgIntroduction, nil)
	}

	return name
}

// IsUntitledTopic reports whether s still shows the "Topic N" label.
func IsUntitledTopic(c Course, s SectionInfo, tr Translator) bool {
	if s.Number == 0 {
		return false
	}

	return SectionName(c, s, tr) == tr.T(MsgTopic, map[string]any{"Number": strconv.Itoa(s.Number)})
}

// WeekDates returns the start of the week of section number and the start
// of the following week.
func WeekDates(c Course, number int) (start, end time.Time) {
	start = c.StartDate.AddDate(0, 0, weekDays*(number-1))

	return start, start.AddDate(0, 0, weekDays)
}

// IsCurrent reports whether s is the highlighted or ongoing section.
func IsCurrent(c Course, s SectionInfo, now time.Time) bool {
	if s.Number == 0 {
		return false
	}

	if c.Format == FormatWeeks {
		start, end := WeekDates(c, s.Number)

		return !now.Before(start) && now.Before(end)
	}

	return c.Marker > 0 && c.Marker == s.Number
}
