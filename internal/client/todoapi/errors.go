package todoapi

import "errors"

var (
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrAuthenticationRequired = errors.New("Authentication required")
	ErrRequestFailed          = errors.New("request failed")
)

// AuthError is returned when sign-in or sign-up is rejected.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// RequestError is any non-2xx answer other than 401.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}
