package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/todo-client/internal/client/todoapi"
	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/repository"
	"github.com/TWRT/todo-client/internal/session"
	"github.com/TWRT/todo-client/internal/testhelpers"
)

type fixture struct {
	api      *testhelpers.FakeAPI
	storage  *repository.StorageRepository
	tokens   *repository.TokenRepository
	client   *todoapi.Client
	notifier *Notifier
	auth     *AuthService
	todos    *TodoService
	theme    *ThemeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := repository.InitDB(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{api: testhelpers.NewFakeAPI(t)}
	f.storage = repository.NewStorageRepository(db)
	f.tokens = repository.NewTokenRepository(f.storage)
	evaluator := session.NewEvaluator(f.tokens, nil)
	f.client = todoapi.NewClient(f.api.URL(), evaluator, nil)
	frozen := time.Now()
	f.notifier = NewNotifier(func() time.Time { return frozen })
	f.auth = NewAuthService(f.client, evaluator, repository.NewRedirectRepository(f.storage))
	f.todos = NewTodoService(f.client, f.tokens, f.notifier, nil)
	f.theme = NewThemeService(repository.NewPreferenceRepository(f.storage))
	return f
}

func (f *fixture) signIn(t *testing.T) {
	t.Helper()

	f.api.AddUser("ada@example.com", "correct-horse", "Ada")
	_, err := f.auth.SignIn(context.Background(), "ada@example.com", "correct-horse")
	require.NoError(t, err)
}

func TestSignInValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.SignIn(ctx, "not-an-email", "pw")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = f.auth.SignIn(ctx, "ada@example.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	assert.Empty(t, f.api.Requests(), "invalid forms never reach the API")
}

func TestSignUpValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.SignUp(ctx, SignUpForm{Email: "a@b.co", Password: "short", ConfirmPassword: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = f.auth.SignUp(ctx, SignUpForm{Email: "a@b.co", Password: "password1", ConfirmPassword: "password2"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	result, err := f.auth.SignUp(ctx, SignUpForm{
		Email: " a@b.co ", Password: "password1", ConfirmPassword: "password1", Name: "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", result.User.Email)
	assert.True(t, f.auth.IsAuthenticated())
}

func TestRedirectAfterLogin(t *testing.T) {
	f := newFixture(t)

	ok, err := f.auth.RequireAuth("/dashboard/archive")
	require.NoError(t, err)
	assert.False(t, ok)

	f.signIn(t)

	ok, err = f.auth.RequireAuth("/dashboard/archive")
	require.NoError(t, err)
	assert.True(t, ok)

	path, err := f.auth.RedirectAfterLogin()
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/archive", path)

	path, err = f.auth.RedirectAfterLogin()
	require.NoError(t, err)
	assert.Equal(t, DashboardPath, path)
}

func TestRequireAuthIgnoresRoot(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.RequireAuth("/")
	require.NoError(t, err)

	path, err := f.auth.RedirectAfterLogin()
	require.NoError(t, err)
	assert.Equal(t, DashboardPath, path)
}

func TestSessionInfo(t *testing.T) {
	f := newFixture(t)

	info, err := f.auth.Session()
	require.NoError(t, err)
	assert.False(t, info.Authenticated)

	f.signIn(t)

	info, err = f.auth.Session()
	require.NoError(t, err)
	assert.True(t, info.Authenticated)
	assert.Equal(t, "Ada", info.UserName)
	assert.Equal(t, "u1", info.UserId)
	assert.False(t, info.ExpiringSoon)
	assert.Contains(t, info.ExpiresIn, "from now")

	require.NoError(t, f.auth.SignOut(context.Background()))
	info, err = f.auth.Session()
	require.NoError(t, err)
	assert.False(t, info.Authenticated)
}

func TestDashboardFlow(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	ctx := context.Background()

	_, err := f.todos.Create(ctx, "   ", "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	first, err := f.todos.Create(ctx, " Write report ", "")
	require.NoError(t, err)
	assert.Equal(t, "Write report", first.Title)
	_, err = f.todos.Create(ctx, "Ship it", "by friday")
	require.NoError(t, err)

	toggled, err := f.todos.Toggle(ctx, first.Id)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	dashboard, err := f.todos.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", dashboard.UserName)
	assert.Equal(t, 2, dashboard.Total)
	assert.Equal(t, 1, dashboard.Completed)
	assert.NotEmpty(t, dashboard.Todos[0].Created)

	toggled, err = f.todos.Toggle(ctx, first.Id)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	require.NoError(t, f.todos.Delete(ctx, first.Id))

	var messages []string
	for _, toast := range f.notifier.Active() {
		messages = append(messages, toast.Message)
	}
	assert.Equal(t, []string{
		"Task created successfully!",
		"Task created successfully!",
		"Task completed! Great job!",
		"Task deleted successfully!",
	}, messages)
}

func TestFailuresPostErrorToast(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)

	err := f.todos.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, todoapi.ErrRequestFailed))

	toasts := f.notifier.Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, models.ToastError, toasts[0].Type)
	assert.Equal(t, "Failed to delete task: Task not found", toasts[0].Message)
}

func TestExpiredSessionSkipsErrorToast(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken(testhelpers.TokenExpiringAt(t, time.Now().Add(-time.Hour))))

	_, err := f.todos.Dashboard(context.Background())
	assert.ErrorIs(t, err, todoapi.ErrAuthenticationRequired)
	assert.Empty(t, f.notifier.Active())
}

func TestNotifierExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := NewNotifier(func() time.Time { return now })

	short := n.Add(models.ToastInfo, "short", time.Second)
	long := n.Success("default")
	assert.Equal(t, int64(3000), long.DurationMs)
	assert.NotEqual(t, short.Id, long.Id)

	now = now.Add(2 * time.Second)
	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, long.Id, active[0].Id)

	assert.True(t, n.Remove(long.Id))
	assert.False(t, n.Remove(long.Id))
	assert.Empty(t, n.Active())
}

func TestThemeResolve(t *testing.T) {
	f := newFixture(t)

	resolved, err := f.theme.Resolve(false)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, resolved, "fallback")

	require.NoError(t, f.theme.Set(models.ThemeSystem))
	resolved, err = f.theme.Resolve(false)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, resolved)
	resolved, err = f.theme.Resolve(true)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, resolved)

	require.NoError(t, f.theme.Set(models.ThemeLight))
	resolved, err = f.theme.Resolve(true)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, resolved)

	assert.ErrorIs(t, f.theme.Set("sepia"), ErrInvalidTheme)
}
