package course

import (
	"fmt"
	"net/url"
	"strconv"
)

// CourseURL is the multiple-section course page.
func CourseURL(courseID uint64) string {
	return fmt.Sprintf("/course/%d", courseID)
}

// SectionPageURL is the single-section page of section number.
func SectionPageURL(courseID uint64, number int) string {
	return CourseURL(courseID) + "?" + url.Values{"section": {strconv.Itoa(number)}}.Encode()
}

// SectionAnchorURL points at a section inside the course page.
func SectionAnchorURL(courseID uint64, number int) string {
	return fmt.Sprintf("%s#section-%d", CourseURL(courseID), number)
}

// SectionActionURL is the base path of a section action.
func SectionActionURL(courseID uint64, number int, action string) string {
	return fmt.Sprintf("%s/section/%d/%s", CourseURL(courseID), number, action)
}

// ReturnURL is where a section action sends the browser back to. sr is the
// section page to return to, 0 for the course page.
func ReturnURL(courseID uint64, sr int) string {
	if sr > 0 {
		return SectionPageURL(courseID, sr)
	}

	return CourseURL(courseID)
}

// VisibilityURL toggles the visibility of a section.
func VisibilityURL(courseID uint64, number, sr int) string {
	return withReturn(SectionActionURL(courseID, number, "visibility"), sr, nil)
}

// MoveURL moves a section by dir (-1 up, 1 down).
func MoveURL(courseID uint64, number, dir int) string {
	return withReturn(SectionActionURL(courseID, number, "move"), 0, url.Values{"dir": {strconv.Itoa(dir)}})
}

// DeleteURL is the delete confirmation page of a section.
func DeleteURL(courseID uint64, number, sr int) string {
	return withReturn(SectionActionURL(courseID, number, "delete"), sr, nil)
}

// EditSectionURL is the section edit form.
func EditSectionURL(courseID uint64, number, sr int) string {
	return withReturn(SectionActionURL(courseID, number, "edit"), sr, nil)
}

// AddModuleURL receives the activity chooser form.
func AddModuleURL(courseID uint64, number int) string {
	return SectionActionURL(courseID, number, "modules")
}

// UploadURL receives the drop zone uploads.
func UploadURL(courseID uint64, number int) string {
	return SectionActionURL(courseID, number, "upload")
}

// AddSectionURL receives the add-section form.
func AddSectionURL(courseID uint64) string {
	return CourseURL(courseID) + "/sections"
}

// EditingURL toggles editing mode and returns to the page of section sr,
// or the course page when sr is 0.
func EditingURL(courseID uint64, sr int) string {
	base := CourseURL(courseID) + "/editing"
	if sr > 0 {
		return withReturn(base, sr, nil)
	}

	return base
}

func withReturn(base string, sr int, q url.Values) string {
	if q == nil {
		q = url.Values{}
	}

	q.Set("sr", strconv.Itoa(sr))

	return base + "?" + q.Encode()
}

// ModuleFileURL downloads the file of a resource activity.
func ModuleFileURL(courseID, moduleID uint64) string {
	return fmt.Sprintf("%s/module/%d/file", CourseURL(courseID), moduleID)
}
