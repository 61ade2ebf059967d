package client

import (
	"context"

	"github.com/TWRT/todo-client/internal/models"
)

type TaskClient interface {
	ListTasks(ctx context.Context) ([]models.Todo, error)
	GetTask(ctx context.Context, id int64) (*models.Todo, error)
	CreateTask(ctx context.Context, task models.CreateTodoRequest) (*models.Todo, error)
	UpdateTask(ctx context.Context, id int64, fields models.UpdateTodoRequest) (*models.Todo, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleComplete(ctx context.Context, id int64, completed bool) (*models.Todo, error)
}

type AuthClient interface {
	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignUp(ctx context.Context, email, password, name string) (*models.AuthResult, error)
	SignOut(ctx context.Context) error
}

type TodoProvider interface {
	AuthClient
	TaskClient
}
