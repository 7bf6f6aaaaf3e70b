package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aidar/taskhive/internal/access"
	"github.com/aidar/taskhive/internal/config"
	"github.com/aidar/taskhive/internal/handler"
	"github.com/aidar/taskhive/internal/middleware"
	"github.com/aidar/taskhive/internal/repository"
	"github.com/aidar/taskhive/internal/repository/memory"
	"github.com/aidar/taskhive/internal/repository/postgres"
	"github.com/aidar/taskhive/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	repos  repositories
	server *http.Server
	logger *slog.Logger
}

// repositories группирует реализации хранилища выбранного драйвера
type repositories struct {
	users    repository.UserRepository
	teams    repository.TeamRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	switch a.config.Storage.Driver {
	case config.StorageDriverMemory:
		a.useMemory()
	default:
		// Подключаемся к базе данных
		if err := a.connectDB(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.usePostgres()
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully", "storage", a.config.Storage.Driver)
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

func (a *App) usePostgres() {
	a.repos = repositories{
		users:    postgres.NewUserRepository(a.db),
		teams:    postgres.NewTeamRepository(a.db),
		projects: postgres.NewProjectRepository(a.db),
		tasks:    postgres.NewTaskRepository(a.db),
	}
}

// useMemory подключает хранилище в памяти процесса; данные теряются при перезапуске
func (a *App) useMemory() {
	store := memory.NewStore()
	a.repos = repositories{
		users:    store.Users(),
		teams:    store.Teams(),
		projects: store.Projects(),
		tasks:    store.Tasks(),
	}
	a.logger.Warn("Using in-memory storage, data will not survive a restart")
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	r := a.router()

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

func (a *App) router() http.Handler {
	// Точка контроля доступа: резолвер цепочки и проверка правил
	guard := access.NewGuard(
		access.NewResolver(a.repos.teams, a.repos.projects, a.repos.tasks),
		a.logger,
	)

	// Инициализируем слой сервисов (бизнес-логика)
	authService := service.NewAuthService(
		a.repos.users,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
		a.config.Auth.BcryptCost,
	)
	userService := service.NewUserService(a.repos.users)
	teamService := service.NewTeamService(a.repos.teams, a.repos.users, guard)
	projectService := service.NewProjectService(a.repos.projects, a.repos.teams, a.repos.users, guard)
	taskService := service.NewTaskService(a.repos.tasks, a.repos.users, guard)
	statsService := service.NewStatsService(a.repos.tasks, guard)

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	teamHandler := handler.NewTeamHandler(teamService, projectService)
	projectHandler := handler.NewProjectHandler(projectService, statsService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Публичные эндпоинты (без авторизации)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Get("/auth/me", authHandler.Me)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.ListTeams)
				r.Post("/", teamHandler.CreateTeam)
				r.Get("/{teamId}", teamHandler.GetTeam)
				r.Post("/{teamId}/invite", teamHandler.Invite)
				r.Delete("/{teamId}/members/{memberId}", teamHandler.RemoveMember)
				r.Get("/{teamId}/projects", teamHandler.ListProjects)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.ListProjects)
				r.Post("/", projectHandler.CreateProject)
				r.Get("/{projectId}", projectHandler.GetProject)
				r.Put("/{projectId}", projectHandler.UpdateProject)
				r.Delete("/{projectId}", projectHandler.DeleteProject)
				r.Get("/{projectId}/members", projectHandler.ListMembers)
				r.Get("/{projectId}/stats", projectHandler.GetStats)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.CreateTask)
				r.Get("/project/{projectId}", taskHandler.ListProjectTasks)
				r.Get("/{taskId}", taskHandler.GetTask)
				r.Put("/{taskId}", taskHandler.UpdateTask)
				r.Delete("/{taskId}", taskHandler.DeleteTask)
			})
		})
	})

	return r
}

// Pool возвращает пул подключений к PostgreSQL (nil для хранилища в памяти)
func (a *App) Pool() *pgxpool.Pool {
	return a.db
}

// Handler возвращает корневой HTTP обработчик (используется в тестах)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
