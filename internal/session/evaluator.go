package session

import "time"

// DefaultExpiryWarning is how close to exp a session counts as expiring soon.
const DefaultExpiryWarning = 5 * time.Minute

// Evaluator derives the authentication status from a TokenStore.
type Evaluator struct {
	store TokenStore
	now   func() time.Time
}

// NewEvaluator builds an Evaluator. A nil now uses time.Now.
func NewEvaluator(store TokenStore, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{store: store, now: now}
}

func (e *Evaluator) Store() TokenStore {
	return e.store
}

func (e *Evaluator) Now() time.Time {
	return e.now()
}

// ValidToken returns the stored token when present and not expired.
func (e *Evaluator) ValidToken() (string, bool) {
	token, ok, err := e.store.GetToken()
	if err != nil || !ok {
		return "", false
	}
	if IsExpired(token, e.now()) {
		return "", false
	}
	return token, true
}

func (e *Evaluator) IsAuthenticated() bool {
	_, ok := e.ValidToken()
	return ok
}

// ExpiresIn returns the remaining lifetime of a valid session.
func (e *Evaluator) ExpiresIn() (time.Duration, bool) {
	token, ok := e.ValidToken()
	if !ok {
		return 0, false
	}
	exp, err := ExpiresAt(token)
	if err != nil {
		return 0, false
	}
	return exp.Sub(e.now()), true
}

// ExpiringSoon is true when the session ends within window, or has no
// readable expiry at all.
func (e *Evaluator) ExpiringSoon(window time.Duration) bool {
	left, ok := e.ExpiresIn()
	if !ok {
		return true
	}
	return left < window
}

func (e *Evaluator) UserID() (string, bool) {
	token, ok := e.ValidToken()
	if !ok {
		return "", false
	}
	id, err := UserID(token)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}
