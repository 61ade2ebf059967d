package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
}

type fakeUser struct {
	id       string
	email    string
	name     string
	password string
}

type fakeTask struct {
	Id          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	UserId      string  `json:"user_id"`
}

// FakeAPI is an in-memory stand-in for the remote task API.
type FakeAPI struct {
	Server *httptest.Server

	// OmitUserName drops name from auth responses.
	OmitUserName bool
	// LogoutStatus overrides the 204 returned by /auth/logout.
	LogoutStatus int
	TokenTTL     time.Duration

	mu       sync.Mutex
	users    map[string]*fakeUser
	tasks    map[int64]*fakeTask
	nextId   int64
	requests []RecordedRequest
}

func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		TokenTTL: 7 * 24 * time.Hour,
		users:    make(map[string]*fakeUser),
		tasks:    make(map[int64]*fakeTask),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/sign-up", f.signUp)
	mux.HandleFunc("POST /auth/sign-in", f.signIn)
	mux.HandleFunc("POST /auth/logout", f.logout)
	mux.HandleFunc("GET /tasks/{$}", f.authed(f.listTasks))
	mux.HandleFunc("POST /tasks/{$}", f.authed(f.createTask))
	mux.HandleFunc("GET /tasks/{id}", f.authed(f.getTask))
	mux.HandleFunc("PUT /tasks/{id}", f.authed(f.updateTask))
	mux.HandleFunc("DELETE /tasks/{id}", f.authed(f.deleteTask))
	mux.HandleFunc("PATCH /tasks/{id}/complete", f.authed(f.completeTask))

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

func (f *FakeAPI) URL() string {
	return f.Server.URL
}

func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

func (f *FakeAPI) LastRequest() RecordedRequest {
	reqs := f.Requests()
	if len(reqs) == 0 {
		return RecordedRequest{}
	}
	return reqs[len(reqs)-1]
}

// AddUser registers a user that can sign in with password.
func (f *FakeAPI) AddUser(email, password, name string) {
	f.mu.Lock()
	f.addUserLocked(email, password, name)
	f.mu.Unlock()
}

func (f *FakeAPI) TaskCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func (f *FakeAPI) addUserLocked(email, password, name string) *fakeUser {
	u := &fakeUser{
		id:       fmt.Sprintf("u%d", len(f.users)+1),
		email:    email,
		name:     name,
		password: password,
	}
	f.users[email] = u
	return u
}

func (f *FakeAPI) sign(userId string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userId,
		"exp": time.Now().Add(f.TokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}).SignedString(TestSecret)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (f *FakeAPI) authResponse(w http.ResponseWriter, u *fakeUser) {
	token, err := f.sign(u.id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}
	user := map[string]string{"id": u.id, "email": u.email}
	if !f.OmitUserName && u.name != "" {
		user["name"] = u.name
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (f *FakeAPI) signUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []string{err.Error()}})
		return
	}

	f.mu.Lock()
	if _, ok := f.users[body.Email]; ok {
		f.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
		return
	}
	u := f.addUserLocked(body.Email, body.Password, body.Name)
	f.mu.Unlock()

	f.authResponse(w, u)
}

func (f *FakeAPI) signIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []string{err.Error()}})
		return
	}

	f.mu.Lock()
	u, ok := f.users[body.Email]
	f.mu.Unlock()
	if !ok || u.password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid email or password"})
		return
	}

	f.authResponse(w, u)
}

func (f *FakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	if f.LogoutStatus != 0 {
		writeJSON(w, f.LogoutStatus, map[string]string{"message": "logout unavailable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) authed(next func(w http.ResponseWriter, r *http.Request, userId string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return TestSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		sub, _ := claims.GetSubject()
		next(w, r, sub)
	}
}

func (f *FakeAPI) ownedTask(w http.ResponseWriter, r *http.Request, userId string) (*fakeTask, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid id"})
		return nil, false
	}
	task, ok := f.tasks[id]
	if !ok || task.UserId != userId {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Task not found"})
		return nil, false
	}
	return task, true
}

func (f *FakeAPI) listTasks(w http.ResponseWriter, r *http.Request, userId string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := make([]fakeTask, 0, len(f.tasks))
	for id := int64(1); id <= f.nextId; id++ {
		if task, ok := f.tasks[id]; ok && task.UserId == userId {
			tasks = append(tasks, *task)
		}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (f *FakeAPI) createTask(w http.ResponseWriter, r *http.Request, userId string) {
	var body struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Completed   bool    `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []string{"title required"}})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextId++
	now := time.Now().UTC().Format(time.RFC3339)
	task := &fakeTask{
		Id:          f.nextId,
		Title:       body.Title,
		Description: body.Description,
		Completed:   body.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserId:      userId,
	}
	f.tasks[task.Id] = task
	writeJSON(w, http.StatusCreated, task)
}

func (f *FakeAPI) getTask(w http.ResponseWriter, r *http.Request, userId string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.ownedTask(w, r, userId)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (f *FakeAPI) updateTask(w http.ResponseWriter, r *http.Request, userId string) {
	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []string{err.Error()}})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.ownedTask(w, r, userId)
	if !ok {
		return
	}
	if body.Title != nil {
		task.Title = *body.Title
	}
	if body.Description != nil {
		task.Description = body.Description
	}
	if body.Completed != nil {
		task.Completed = *body.Completed
	}
	task.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, task)
}

func (f *FakeAPI) deleteTask(w http.ResponseWriter, r *http.Request, userId string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.ownedTask(w, r, userId)
	if !ok {
		return
	}
	delete(f.tasks, task.Id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) completeTask(w http.ResponseWriter, r *http.Request, userId string) {
	var body struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []string{err.Error()}})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.ownedTask(w, r, userId)
	if !ok {
		return
	}
	task.Completed = body.Completed
	task.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, task)
}
