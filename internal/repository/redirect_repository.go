package repository

// RedirectRepository remembers where to send the user after signing in.
// The value lives in session scope.
type RedirectRepository struct {
	storage *StorageRepository
}

func NewRedirectRepository(storage *StorageRepository) *RedirectRepository {
	return &RedirectRepository{storage: storage}
}

func (r *RedirectRepository) Save(path string) error {
	return r.storage.Set(ScopeSession, KeyRedirectAfterLogin, path)
}

// Pop returns the saved path and removes it.
func (r *RedirectRepository) Pop() (string, bool, error) {
	path, ok, err := r.storage.Get(ScopeSession, KeyRedirectAfterLogin)
	if err != nil || !ok {
		return "", false, err
	}
	if err := r.storage.Delete(ScopeSession, KeyRedirectAfterLogin); err != nil {
		return "", false, err
	}
	return path, true, nil
}
