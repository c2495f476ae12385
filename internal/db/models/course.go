package models

import "time"

// Course is a course with its sequence of sections.
type Course struct {
	ID        uint64 `gorm:"primaryKey"`
	ShortName string `gorm:"unique;size:100;not null"`
	FullName  string `gorm:"size:255;not null"`
	// Format is "topics" or "weeks".
	Format string `gorm:"size:20;not null;default:'topics'"`
	// NumSections is the number of regular sections after the introduction.
	// Section rows numbered above it are orphaned.
	NumSections int `gorm:"not null;default:0"`
	// HiddenSections makes hidden sections disappear completely instead of
	// showing a "not available" placeholder.
	HiddenSections bool
	// Marker is the highlighted topic, 0 for none.
	Marker    int
	StartDate time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Course model.
func (Course) TableName() string {
	return "courses"
}

// Section is one numbered section of a course. Number 0 is the introduction.
type Section struct {
	ID       uint64 `gorm:"primaryKey"`
	CourseID uint64 `gorm:"not null;uniqueIndex:idx_course_section"`
	Number   int    `gorm:"not null;uniqueIndex:idx_course_section"`
	// Name is nil for sections using the generated default name.
	Name    *string `gorm:"size:255"`
	Summary string  `gorm:"type:text"`
	Visible bool    `gorm:"not null"`
	// Availability is the JSON encoded restriction tree, empty for none.
	Availability string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for the Section model.
func (Section) TableName() string {
	return "course_sections"
}

// Module is an activity or resource placed in a course section.
type Module struct {
	ID            uint64 `gorm:"primaryKey"`
	CourseID      uint64 `gorm:"not null;index:idx_course_module_section"`
	SectionNumber int    `gorm:"not null;index:idx_course_module_section"`
	Name          string `gorm:"size:255;not null"`
	// ModName is the activity type, e.g. "forum" or "resource".
	ModName string `gorm:"size:50;not null"`
	Visible bool   `gorm:"not null"`
	// FileKey references the uploaded file of a resource module.
	FileKey   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Module model.
func (Module) TableName() string {
	return "course_modules"
}
