package models

import "time"

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
)

type Toast struct {
	Id         string    `json:"id"`
	Type       ToastType `json:"type"`
	Message    string    `json:"message"`
	DurationMs int64     `json:"durationMs"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}
