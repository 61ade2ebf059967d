package service

import (
	"errors"

	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/repository"
)

var ErrInvalidTheme = errors.New("theme must be one of light, dark, system")

type ThemeService struct {
	prefs *repository.PreferenceRepository
}

func NewThemeService(prefs *repository.PreferenceRepository) *ThemeService {
	return &ThemeService{prefs: prefs}
}

func (s *ThemeService) Preference() (models.Theme, error) {
	return s.prefs.Theme()
}

func (s *ThemeService) Set(theme models.Theme) error {
	if !theme.Valid() {
		return ErrInvalidTheme
	}
	return s.prefs.SetTheme(theme)
}

// Resolve returns the theme to render: the stored choice, the system
// preference when "system" is stored, and dark otherwise.
func (s *ThemeService) Resolve(systemDark bool) (models.Theme, error) {
	stored, err := s.prefs.Theme()
	if err != nil {
		return "", err
	}

	switch stored {
	case models.ThemeLight, models.ThemeDark:
		return stored, nil
	case models.ThemeSystem:
		if systemDark {
			return models.ThemeDark, nil
		}
		return models.ThemeLight, nil
	}
	return models.ThemeDark, nil
}
