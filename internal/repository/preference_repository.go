package repository

import "github.com/TWRT/todo-client/internal/models"

type PreferenceRepository struct {
	storage *StorageRepository
}

func NewPreferenceRepository(storage *StorageRepository) *PreferenceRepository {
	return &PreferenceRepository{storage: storage}
}

// Theme returns the stored preference, or "" when none was saved.
func (r *PreferenceRepository) Theme() (models.Theme, error) {
	value, _, err := r.storage.Get(ScopeLocal, KeyTheme)
	if err != nil {
		return "", err
	}
	return models.Theme(value), nil
}

func (r *PreferenceRepository) SetTheme(theme models.Theme) error {
	return r.storage.Set(ScopeLocal, KeyTheme, string(theme))
}
