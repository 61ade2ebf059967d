package handlers

import (
	"net/http"

	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/service"
)

type CreateTaskRequestBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CompleteTaskRequestBody struct {
	Completed bool `json:"completed"`
}

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

func (h *TodoHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.todoService.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *TodoHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	todo, err := h.todoService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task": todo})
}

func (h *TodoHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var reqBody CreateTaskRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	todo, err := h.todoService.Create(r.Context(), reqBody.Title, reqBody.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"task": todo})
}

func (h *TodoHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var fields models.UpdateTodoRequest
	if !decodeBody(w, r, &fields) {
		return
	}

	todo, err := h.todoService.Update(r.Context(), id, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task": todo})
}

func (h *TodoHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var reqBody CompleteTaskRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	todo, err := h.todoService.SetCompleted(r.Context(), id, reqBody.Completed)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task": todo})
}

func (h *TodoHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	todo, err := h.todoService.Toggle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task": todo})
}

func (h *TodoHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	if err := h.todoService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
