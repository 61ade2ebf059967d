package api

import (
	"context"
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"github.com/TWRT/todo-client/internal/api/handlers"
	"github.com/TWRT/todo-client/internal/client/todoapi"
	"github.com/TWRT/todo-client/internal/config"
	"github.com/TWRT/todo-client/internal/pkg/logger"
	"github.com/TWRT/todo-client/internal/repository"
	"github.com/TWRT/todo-client/internal/service"
	"github.com/TWRT/todo-client/internal/session"
)

func SetupRouter(db *sql.DB, cfg config.Config, log *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	storageRepo := repository.NewStorageRepository(db)
	tokenRepo := repository.NewTokenRepository(storageRepo)
	redirectRepo := repository.NewRedirectRepository(storageRepo)
	preferenceRepo := repository.NewPreferenceRepository(storageRepo)

	evaluator := session.NewEvaluator(tokenRepo, nil)
	todoClient := todoapi.NewClient(cfg.ApiUrl, evaluator, &http.Client{Timeout: cfg.RequestTimeout})
	notifier := service.NewNotifier(nil)

	todoClient.OnUnauthorized(func(ctx context.Context) {
		logger.Warnf(ctx, "task api rejected the session, signed out")
		notifier.Error("Your session has expired. Please sign in again.")
	})

	authService := service.NewAuthService(todoClient, evaluator, redirectRepo)
	todoService := service.NewTodoService(todoClient, tokenRepo, notifier, nil)
	themeService := service.NewThemeService(preferenceRepo)

	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	uiHandler := handlers.NewUIHandler(notifier, themeService)

	mux.HandleFunc("POST /auth/sign-in", authHandler.SignIn)
	mux.HandleFunc("POST /auth/sign-up", authHandler.SignUp)
	mux.HandleFunc("POST /auth/sign-out", authHandler.SignOut)
	mux.HandleFunc("GET /auth/session", authHandler.Session)

	mux.HandleFunc("GET /dashboard", authHandler.RequireAuth(todoHandler.Dashboard))
	mux.HandleFunc("POST /tasks", authHandler.RequireAuth(todoHandler.CreateTask))
	mux.HandleFunc("GET /tasks/{id}", authHandler.RequireAuth(todoHandler.GetTask))
	mux.HandleFunc("PUT /tasks/{id}", authHandler.RequireAuth(todoHandler.UpdateTask))
	mux.HandleFunc("PATCH /tasks/{id}/complete", authHandler.RequireAuth(todoHandler.CompleteTask))
	mux.HandleFunc("POST /tasks/{id}/toggle", authHandler.RequireAuth(todoHandler.ToggleTask))
	mux.HandleFunc("DELETE /tasks/{id}", authHandler.RequireAuth(todoHandler.DeleteTask))

	mux.HandleFunc("GET /toasts", uiHandler.ListToasts)
	mux.HandleFunc("DELETE /toasts/{id}", uiHandler.DismissToast)
	mux.HandleFunc("GET /theme", uiHandler.GetTheme)
	mux.HandleFunc("PUT /theme", uiHandler.SetTheme)

	return withLogging(log, mux)
}
