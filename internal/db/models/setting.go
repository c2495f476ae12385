// Package models contains the gorm models of courses, sections, activities,
// users with their roles, and site settings.
package models

// Setting is a named site setting. Value holds JSON.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte
}

// All lists every model for migrations.
func All() []any {
	return []any{
		&Role{},
		&Permission{},
		&RolePermission{},
		&User{},
		&Setting{},
		&Course{},
		&Section{},
		&Module{},
	}
}
