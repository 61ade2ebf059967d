package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

// Scope separates values that outlive the process from values that only
// last until the next start.
type Scope string

const (
	ScopeLocal   Scope = "local"
	ScopeSession Scope = "session"
)

const (
	KeyToken              = "token"
	KeyUserName           = "user_name"
	KeyTheme              = "theme"
	KeyRedirectAfterLogin = "redirectAfterLogin"
)

type StorageRepository struct {
	db *sql.DB
}

func NewStorageRepository(db *sql.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

func (r *StorageRepository) Get(scope Scope, key string) (string, bool, error) {
	query := `SELECT value FROM storage WHERE scope = ? AND key = ?`

	var value string
	err := r.db.QueryRow(query, scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("Error trying to read %s/%s: %w", scope, key, err)
	}
	return value, true, nil
}

func (r *StorageRepository) Set(scope Scope, key, value string) error {
	query := `
	INSERT INTO storage (scope, key, value) VALUES (?, ?, ?)
	ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, scope, key, value); err != nil {
		return fmt.Errorf("Error trying to write %s/%s: %w", scope, key, err)
	}
	return nil
}

func (r *StorageRepository) Delete(scope Scope, keys ...string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error trying to begin delete: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.Exec(`DELETE FROM storage WHERE scope = ? AND key = ?`, scope, key); err != nil {
			return fmt.Errorf("Error trying to delete %s/%s: %w", scope, key, err)
		}
	}
	return tx.Commit()
}

func (r *StorageRepository) ClearScope(scope Scope) error {
	if _, err := r.db.Exec(`DELETE FROM storage WHERE scope = ?`, scope); err != nil {
		return fmt.Errorf("Error trying to clear %s storage: %w", scope, err)
	}
	return nil
}
