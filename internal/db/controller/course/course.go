// Package course persists courses, their numbered sections and the
// activities placed in them.
//
// Section numbers of a course are unique. Renumbering therefore happens row
// by row inside a transaction, in an order that never collides.
package course

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkeenan750/snapcourse/internal/db/models"
)

const (
	whereCourse        = "course_id = ?"
	whereCourseSection = "course_id = ? AND number = ?"
	whereCourseModules = "course_id = ? AND section_number = ?"

	// parkedNumber temporarily holds a section while two sections swap.
	parkedNumber = -1
)

// Get returns the course with id.
func Get(db *gorm.DB, id uint64) (*models.Course, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Course

	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}

		return nil, fmt.Errorf("failed to load course %d: %w", id, err)
	}

	return &c, nil
}

// List returns all courses ordered by full name.
func List(db *gorm.DB) ([]models.Course, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var courses []models.Course

	if err := db.Order("full_name, id").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, nil
}

// Create stores c together with its sections 0 to c.NumSections.
func Create(db *gorm.DB, c *models.Course) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}

		return ensureSections(tx, c)
	})
}

// EnsureSections creates missing section rows 0 to c.NumSections.
func EnsureSections(db *gorm.DB, c *models.Course) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return ensureSections(tx, c)
	})
}

func ensureSections(tx *gorm.DB, c *models.Course) error {
	var numbers []int

	if err := tx.Model(&models.Section{}).Where(whereCourse, c.ID).Pluck("number", &numbers).Error; err != nil {
		return fmt.Errorf("failed to list sections: %w", err)
	}

	exists := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		exists[n] = true
	}

	for n := 0; n <= c.NumSections; n++ {
		if exists[n] {
			continue
		}

		if err := tx.Create(&models.Section{CourseID: c.ID, Number: n, Visible: true}).Error; err != nil {
			return fmt.Errorf("failed to create section %d: %w", n, err)
		}
	}

	return nil
}

// Sections returns all section rows of the course ordered by number,
// including orphaned ones above NumSections.
func Sections(db *gorm.DB, courseID uint64) ([]models.Section, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sections []models.Section

	if err := db.Where(whereCourse, courseID).Order("number").Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("failed to load sections: %w", err)
	}

	return sections, nil
}

// Section returns the section row with number.
func Section(db *gorm.DB, courseID uint64, number int) (*models.Section, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Section

	if err := db.Where(whereCourseSection, courseID, number).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}

		return nil, fmt.Errorf("failed to load section %d: %w", number, err)
	}

	return &s, nil
}

// Modules returns the activities of the course ordered by section and creation.
func Modules(db *gorm.DB, courseID uint64) ([]models.Module, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var modules []models.Module

	if err := db.Where(whereCourse, courseID).Order("section_number, id").Find(&modules).Error; err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}

	return modules, nil
}

// Module returns the activity id of the course.
func Module(db *gorm.DB, courseID, id uint64) (*models.Module, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var m models.Module

	if err := db.Where(whereCourse, courseID).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}

		return nil, fmt.Errorf("failed to load module %d: %w", id, err)
	}

	return &m, nil
}

// SectionFileKeys returns the stored file keys of the activities in section
// number, so callers can remove the files after deleting the section.
func SectionFileKeys(db *gorm.DB, courseID uint64, number int) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var keys []string

	err := db.Model(&models.Module{}).
		Where(whereCourseModules+" AND file_key <> ''", courseID, number).
		Pluck("file_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load file keys: %w", err)
	}

	return keys, nil
}

// lockCourse loads the course inside tx, locking the row where supported.
func lockCourse(tx *gorm.DB, id uint64) (*models.Course, error) {
	var c models.Course

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load course %d: %w", id, err)
	}

	return &c, nil
}
