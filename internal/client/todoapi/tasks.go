package todoapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TWRT/todo-client/internal/models"
)

func (c *Client) ListTasks(ctx context.Context) ([]models.Todo, error) {
	var tasks []apiTask
	if err := c.request(ctx, http.MethodGet, "/tasks/", nil, &tasks); err != nil {
		return nil, err
	}

	todos := make([]models.Todo, len(tasks))
	for i, task := range tasks {
		todos[i] = mapTaskToTodo(task)
	}
	return todos, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*models.Todo, error) {
	return c.taskCall(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil)
}

func (c *Client) CreateTask(ctx context.Context, task models.CreateTodoRequest) (*models.Todo, error) {
	return c.taskCall(ctx, http.MethodPost, "/tasks/", task)
}

func (c *Client) UpdateTask(ctx context.Context, id int64, fields models.UpdateTodoRequest) (*models.Todo, error) {
	return c.taskCall(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), fields)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) ToggleComplete(ctx context.Context, id int64, completed bool) (*models.Todo, error) {
	return c.taskCall(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/complete", id), completeRequest{Completed: completed})
}

func (c *Client) taskCall(ctx context.Context, method, endpoint string, body any) (*models.Todo, error) {
	var task apiTask
	if err := c.request(ctx, method, endpoint, body, &task); err != nil {
		return nil, err
	}
	todo := mapTaskToTodo(task)
	return &todo, nil
}
