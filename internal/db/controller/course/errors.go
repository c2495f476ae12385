package course

import "errors"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrCourseNotFound is returned for an unknown course id.
	ErrCourseNotFound = errors.New("course not found")
	// ErrSectionNotFound is returned for a section number without a row.
	ErrSectionNotFound = errors.New("section not found")
	// ErrModuleNotFound is returned for an unknown activity id.
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidMove is returned when a section cannot move in the requested direction.
	ErrInvalidMove = errors.New("invalid section move")
	// ErrInvalidSection is returned for actions not allowed on the section,
	// like deleting the introduction.
	ErrInvalidSection = errors.New("invalid section")
)
