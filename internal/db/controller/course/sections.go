package course

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/db/models"
)

// ToggleSectionVisibility flips the visibility of a section and returns the
// new state.
func ToggleSectionVisibility(db *gorm.DB, courseID uint64, number int) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var visible bool

	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := Section(tx, courseID, number)
		if err != nil {
			return err
		}

		visible = !s.Visible

		return setVisibility(tx, s, visible)
	})

	return visible, err
}

// SetSectionVisibility shows or hides a section.
func SetSectionVisibility(db *gorm.DB, courseID uint64, number int, visible bool) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		s, err := Section(tx, courseID, number)
		if err != nil {
			return err
		}

		return setVisibility(tx, s, visible)
	})
}

func setVisibility(tx *gorm.DB, s *models.Section, visible bool) error {
	if s.Number == 0 && !visible {
		return ErrInvalidSection
	}

	if err := tx.Model(s).Update("visible", visible).Error; err != nil {
		return fmt.Errorf("failed to update section %d visibility: %w", s.Number, err)
	}

	return nil
}

// MoveSection swaps section number with its neighbour in direction dir
// (-1 up, 1 down). Activities and the highlight marker move along.
func MoveSection(db *gorm.DB, courseID uint64, number, dir int) error {
	if db == nil {
		return ErrDBNil
	}

	if dir != -1 && dir != 1 {
		return ErrInvalidMove
	}

	return db.Transaction(func(tx *gorm.DB) error {
		c, err := lockCourse(tx, courseID)
		if err != nil {
			return err
		}

		target := number + dir
		if number < 1 || target < 1 || number > c.NumSections || target > c.NumSections {
			return ErrInvalidMove
		}

		if err = swapSections(tx, courseID, number, target); err != nil {
			return err
		}

		switch c.Marker {
		case number:
			c.Marker = target
		case target:
			c.Marker = number
		default:
			return nil
		}

		return tx.Model(c).Update("marker", c.Marker).Error
	})
}

func swapSections(tx *gorm.DB, courseID uint64, a, b int) error {
	steps := [][2]int{{a, parkedNumber}, {b, a}, {parkedNumber, b}}

	for _, step := range steps {
		if err := renumber(tx, courseID, step[0], step[1]); err != nil {
			return err
		}
	}

	return nil
}

// renumber moves the section row and its activities from number from to to.
func renumber(tx *gorm.DB, courseID uint64, from, to int) error {
	if err := tx.Model(&models.Section{}).
		Where(whereCourseSection, courseID, from).
		Update("number", to).Error; err != nil {
		return fmt.Errorf("failed to renumber section %d to %d: %w", from, to, err)
	}

	if err := tx.Model(&models.Module{}).
		Where(whereCourseModules, courseID, from).
		Update("section_number", to).Error; err != nil {
		return fmt.Errorf("failed to move activities of section %d: %w", from, err)
	}

	return nil
}

// DeleteSection deletes a section and its activities and closes the gap by
// renumbering the following sections. Deleting a regular section shrinks
// the course by one; deleting an orphaned one leaves NumSections alone.
func DeleteSection(db *gorm.DB, courseID uint64, number int) error {
	if db == nil {
		return ErrDBNil
	}

	if number < 1 {
		return ErrInvalidSection
	}

	return db.Transaction(func(tx *gorm.DB) error {
		c, err := lockCourse(tx, courseID)
		if err != nil {
			return err
		}

		s, err := Section(tx, courseID, number)
		if err != nil {
			return err
		}

		if err = tx.Where(whereCourseModules, courseID, number).Delete(&models.Module{}).Error; err != nil {
			return fmt.Errorf("failed to delete activities of section %d: %w", number, err)
		}

		if err = tx.Delete(s).Error; err != nil {
			return fmt.Errorf("failed to delete section %d: %w", number, err)
		}

		var following []int

		if err = tx.Model(&models.Section{}).
			Where("course_id = ? AND number > ?", courseID, number).
			Order("number").
			Pluck("number", &following).Error; err != nil {
			return fmt.Errorf("failed to list following sections: %w", err)
		}

		for _, n := range following {
			if err = renumber(tx, courseID, n, n-1); err != nil {
				return err
			}
		}

		updates := map[string]any{}

		if number <= c.NumSections {
			updates["num_sections"] = c.NumSections - 1
		}

		switch {
		case c.Marker == number:
			updates["marker"] = 0
		case c.Marker > number:
			updates["marker"] = c.Marker - 1
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(c).Updates(updates).Error
	})
}

// AddSection appends a regular section after the last one. Orphaned
// sections are shifted up to make room.
func AddSection(db *gorm.DB, courseID uint64, name *string, summary string) (*models.Section, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var created *models.Section

	err := db.Transaction(func(tx *gorm.DB) error {
		c, err := lockCourse(tx, courseID)
		if err != nil {
			return err
		}

		number := c.NumSections + 1

		var stealth []int

		if err = tx.Model(&models.Section{}).
			Where("course_id = ? AND number >= ?", courseID, number).
			Order("number DESC").
			Pluck("number", &stealth).Error; err != nil {
			return fmt.Errorf("failed to list orphaned sections: %w", err)
		}

		for _, n := range stealth {
			if err = renumber(tx, courseID, n, n+1); err != nil {
				return err
			}
		}

		created = &models.Section{
			CourseID: courseID,
			Number:   number,
			Name:     name,
			Summary:  summary,
			Visible:  true,
		}

		if err = tx.Create(created).Error; err != nil {
			return fmt.Errorf("failed to create section %d: %w", number, err)
		}

		return tx.Model(c).Update("num_sections", number).Error
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateSection sets name and summary of a section. A nil name restores
// the generated default name.
func UpdateSection(db *gorm.DB, courseID uint64, number int, name *string, summary string) error {
	if db == nil {
		return ErrDBNil
	}

	s, err := Section(db, courseID, number)
	if err != nil {
		return err
	}

	if err = db.Model(s).Select("name", "summary").Updates(map[string]any{
		"name":    name,
		"summary": summary,
	}).Error; err != nil {
		return fmt.Errorf("failed to update section %d: %w", number, err)
	}

	return nil
}

// SetAvailability stores the restriction tree of a section. An empty string
// removes all restrictions.
func SetAvailability(db *gorm.DB, courseID uint64, number int, availability string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Section{}).
		Where(whereCourseSection, courseID, number).
		Update("availability", availability)
	if result.Error != nil {
		return fmt.Errorf("failed to update section %d availability: %w", number, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}

	return nil
}

// AddModule places an activity in an existing section.
func AddModule(db *gorm.DB, m *models.Module) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Section(db, m.CourseID, m.SectionNumber); err != nil {
		return err
	}

	if err := db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}

	return nil
}
