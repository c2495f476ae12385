package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/db/models"
)

// Service resolves the capabilities of users.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) rolePermissions(userID uint64) *gorm.DB {
	return s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND users.active = ?", userID, true)
}

// HasPermission checks if the role of a user grants permission.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	var count int64

	if err := s.rolePermissions(userID).Where("permissions.name = ?", permission).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}

	return count > 0, nil
}

// GetUserPermissions lists the permission names granted to a user.
func (s *Service) GetUserPermissions(userID uint64) ([]string, error) {
	var permissions []string

	if err := s.rolePermissions(userID).
		Distinct("permissions.name").
		Order("permissions.name").
		Pluck("permissions.name", &permissions).Error; err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// Capabilities returns the capability set of a user.
func (s *Service) Capabilities(userID uint64) (Capabilities, error) {
	names, err := s.GetUserPermissions(userID)
	if err != nil {
		return nil, err
	}

	return NewCapabilities(names...), nil
}

// GrantRole creates the role if needed and assigns it exactly the given
// permissions, which must exist.
func (s *Service) GrantRole(name, description string, permissions ...string) (*models.Role, error) {
	role := models.Role{Name: name}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", name).
			Attrs(models.Role{Description: description, IsSystem: true}).
			FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", name, err)
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to clear permissions of role %s: %w", name, err)
		}

		if len(permissions) == 0 {
			return nil
		}

		var perms []models.Permission

		if err := tx.Where("name IN ?", permissions).Find(&perms).Error; err != nil {
			return fmt.Errorf("failed to load permissions: %w", err)
		}

		if len(perms) != len(permissions) {
			return fmt.Errorf("role %s: %d of %d permissions exist", name, len(perms), len(permissions))
		}

		for _, p := range perms {
			if err := tx.Create(&models.RolePermission{RoleID: role.ID, PermissionID: p.ID}).Error; err != nil {
				return fmt.Errorf("failed to grant %s to role %s: %w", p.Name, name, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &role, nil
}

// EnsurePermissions creates the permission rows of all known capabilities.
func (s *Service) EnsurePermissions() error {
	for _, d := range Definitions {
		p := models.Permission{Name: d.Name}

		if err := s.db.Where("name = ?", d.Name).
			Attrs(models.Permission{Resource: d.Resource, Action: d.Action, Description: d.Description}).
			FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("failed to create permission %s: %w", d.Name, err)
		}
	}

	return nil
}
