package todoapi

import (
	"encoding/json"

	"github.com/TWRT/todo-client/internal/models"
)

type apiTask struct {
	Id          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	UserId      string  `json:"user_id"`
}

type apiUser struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  apiUser `json:"user"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type completeRequest struct {
	Completed bool `json:"completed"`
}

// apiError covers both {"detail": "..."} and {"message": "..."} bodies.
// detail may also be a validation list, which is ignored.
type apiError struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func errorMessage(body []byte, fallback string) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil {
		return fallback
	}
	var detail string
	if err := json.Unmarshal(e.Detail, &detail); err == nil && detail != "" {
		return detail
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

func mapTaskToTodo(t apiTask) models.Todo {
	todo := models.Todo{
		Id:        t.Id,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		UserId:    t.UserId,
	}
	if t.Description != nil {
		todo.Description = *t.Description
	}
	return todo
}

// displayName picks full_name, then name, then fallback.
func (u apiUser) displayName(fallback string) string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Name != "" {
		return u.Name
	}
	return fallback
}
