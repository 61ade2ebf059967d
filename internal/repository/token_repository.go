package repository

// TokenRepository keeps the session token and display name in local storage.
type TokenRepository struct {
	storage *StorageRepository
}

func NewTokenRepository(storage *StorageRepository) *TokenRepository {
	return &TokenRepository{storage: storage}
}

func (r *TokenRepository) GetToken() (string, bool, error) {
	return r.storage.Get(ScopeLocal, KeyToken)
}

func (r *TokenRepository) SetToken(token string) error {
	return r.storage.Set(ScopeLocal, KeyToken, token)
}

func (r *TokenRepository) UserName() (string, bool, error) {
	return r.storage.Get(ScopeLocal, KeyUserName)
}

func (r *TokenRepository) SetUserName(name string) error {
	return r.storage.Set(ScopeLocal, KeyUserName, name)
}

func (r *TokenRepository) Clear() error {
	return r.storage.Delete(ScopeLocal, KeyToken, KeyUserName)
}
