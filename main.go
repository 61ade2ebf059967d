package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TWRT/todo-client/internal/api"
	"github.com/TWRT/todo-client/internal/config"
	"github.com/TWRT/todo-client/internal/pkg/logger"
	"github.com/TWRT/todo-client/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer sugar.Sync()

	db, err := repository.InitDB(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer db.Close()

	// session-scoped values only live as long as the process
	if err := repository.NewStorageRepository(db).ClearScope(repository.ScopeSession); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.SetupRouter(db, cfg, sugar),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		sugar.Infof("dashboard listening on %s, task api at %s", cfg.ListenAddr, cfg.ApiUrl)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	sugar.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
