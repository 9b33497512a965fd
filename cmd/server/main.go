package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sumire/taskboard/internal/config"
	"github.com/sumire/taskboard/internal/handler"
	"github.com/sumire/taskboard/internal/repository"
	"github.com/sumire/taskboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Best effort: a missing .env is fine outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	slog.Info("database ready")

	projectRepo := repository.NewProjectRepository(db)
	listRepo := repository.NewBoardListRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	memberRepo := repository.NewMemberRepository(db)

	projectSvc := service.NewProjectService(projectRepo)
	listSvc := service.NewBoardListService(listRepo, projectRepo)
	taskSvc := service.NewTaskService(taskRepo, listRepo)
	memberSvc := service.NewMemberService(memberRepo)

	projectHandler := handler.NewProjectHandler(projectSvc)
	listHandler := handler.NewBoardListHandler(listSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	memberHandler := handler.NewMemberHandler(memberSvc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewAppValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(handler.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAccept, echo.HeaderContentType},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	api.GET("/projects", projectHandler.List)
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects/:project_id", projectHandler.Get)
	api.PUT("/projects/:project_id", projectHandler.Update)
	api.DELETE("/projects/:project_id", projectHandler.Delete)

	api.GET("/projects/:project_id/lists", listHandler.List)
	api.POST("/projects/:project_id/lists", listHandler.Create)
	api.GET("/lists/:list_id", listHandler.Get)
	api.PUT("/lists/:list_id", listHandler.Update)
	api.DELETE("/lists/:list_id", listHandler.Delete)

	api.GET("/lists/:list_id/tasks", taskHandler.List)
	api.POST("/lists/:list_id/tasks", taskHandler.Create)
	api.GET("/tasks/:task_id", taskHandler.Get)
	api.PUT("/tasks/:task_id", taskHandler.Update)
	api.DELETE("/tasks/:task_id", taskHandler.Delete)
	api.GET("/tasks/:task_id/logs", taskHandler.Logs)

	api.GET("/projects/:project_id/members", memberHandler.List)
	api.POST("/projects/:project_id/members", memberHandler.Add)
	api.DELETE("/projects/:project_id/members", memberHandler.Remove)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
