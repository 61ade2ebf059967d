package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/TWRT/todo-client/internal/client"
	"github.com/TWRT/todo-client/internal/client/todoapi"
	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/session"
)

var ErrTitleRequired = errors.New("Title is required")

type TodoItem struct {
	models.Todo
	Created string `json:"created,omitempty"`
}

type Dashboard struct {
	UserName  string     `json:"userName,omitempty"`
	Todos     []TodoItem `json:"todos"`
	Completed int        `json:"completed"`
	Total     int        `json:"total"`
}

type TodoService struct {
	taskClient client.TaskClient
	tokens     session.TokenStore
	notifier   *Notifier
	now        func() time.Time
}

func NewTodoService(
	taskClient client.TaskClient,
	tokens session.TokenStore,
	notifier *Notifier,
	now func() time.Time,
) *TodoService {
	if now == nil {
		now = time.Now
	}
	return &TodoService{
		taskClient: taskClient,
		tokens:     tokens,
		notifier:   notifier,
		now:        now,
	}
}

// fail posts an error toast unless the session ended, which the
// unauthorized hook reports on its own.
func (s *TodoService) fail(err error, action string) error {
	if !errors.Is(err, todoapi.ErrAuthenticationRequired) {
		s.notifier.Error(fmt.Sprintf("Failed to %s: %v", action, err))
	}
	return err
}

func (s *TodoService) Dashboard(ctx context.Context) (*Dashboard, error) {
	todos, err := s.taskClient.ListTasks(ctx)
	if err != nil {
		return nil, s.fail(err, "load tasks")
	}

	name, _, err := s.tokens.UserName()
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		UserName: name,
		Todos:    make([]TodoItem, len(todos)),
		Total:    len(todos),
	}
	now := s.now()
	for i, todo := range todos {
		if todo.Completed {
			dashboard.Completed++
		}
		dashboard.Todos[i] = TodoItem{Todo: todo, Created: relativeTime(todo.CreatedAt, now)}
	}
	return dashboard, nil
}

func (s *TodoService) Get(ctx context.Context, id int64) (*models.Todo, error) {
	return s.taskClient.GetTask(ctx, id)
}

func (s *TodoService) Create(ctx context.Context, title, description string) (*models.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo, err := s.taskClient.CreateTask(ctx, models.CreateTodoRequest{
		Title:       title,
		Description: strings.TrimSpace(description),
		Completed:   false,
	})
	if err != nil {
		return nil, s.fail(err, "create task")
	}

	s.notifier.Success("Task created successfully!")
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id int64, fields models.UpdateTodoRequest) (*models.Todo, error) {
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		fields.Title = &title
	}

	todo, err := s.taskClient.UpdateTask(ctx, id, fields)
	if err != nil {
		return nil, s.fail(err, "update task")
	}

	s.notifier.Success("Task updated successfully!")
	return todo, nil
}

// Toggle flips the completion state the server currently reports.
func (s *TodoService) Toggle(ctx context.Context, id int64) (*models.Todo, error) {
	current, err := s.taskClient.GetTask(ctx, id)
	if err != nil {
		return nil, s.fail(err, "toggle task")
	}
	return s.SetCompleted(ctx, id, !current.Completed)
}

func (s *TodoService) SetCompleted(ctx context.Context, id int64, completed bool) (*models.Todo, error) {
	todo, err := s.taskClient.ToggleComplete(ctx, id, completed)
	if err != nil {
		return nil, s.fail(err, "toggle task")
	}

	if todo.Completed {
		s.notifier.Success("Task completed! Great job!")
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.taskClient.DeleteTask(ctx, id); err != nil {
		return s.fail(err, "delete task")
	}

	s.notifier.Success("Task deleted successfully!")
	return nil
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"}

func relativeTime(stamp string, now time.Time) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, stamp); err == nil {
			return humanize.RelTime(t, now, "ago", "from now")
		}
	}
	return ""
}
