package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/config"
)

// ThemeName is the setting row holding the course page settings.
const ThemeName = "theme"

// Theme holds the course page settings editable by site admins.
type Theme struct {
	DisableEditorHints  bool `json:"disableEditorHints"`
	DiscloseUnavailable bool `json:"discloseUnavailable"`
}

// LoadTheme returns the stored theme settings, or the config defaults when
// nothing was saved yet.
func LoadTheme(db *gorm.DB, defaults config.Theme) (Theme, error) {
	theme := Theme{
		DisableEditorHints:  defaults.DisableEditorHints,
		DiscloseUnavailable: defaults.DiscloseUnavailable,
	}

	err := GetJSON(db, ThemeName, &theme)
	if err != nil && !errors.Is(err, ErrSettingNotFound) {
		return theme, err
	}

	return theme, nil
}

// SaveTheme stores the theme settings.
func SaveTheme(db *gorm.DB, theme Theme) error {
	return SetJSON(db, ThemeName, theme)
}
