package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskBoard/internal/config"
	"taskBoard/internal/handlers"
	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/notify"
	"taskBoard/internal/repository"
	"taskBoard/internal/repository/inmemory"
	"taskBoard/internal/repository/sqlite"
	"taskBoard/internal/service"
	"taskBoard/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	config  *config.Config
	server  *http.Server
	router  *chi.Mux
	repo    repository.Storage
	service *service.TaskService
	worker  *worker.DeadlineWorker

	cancelWorker context.CancelFunc
	shutdowns    []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Завершение работы логирования...")
		logger.Sync()
	})

	a.repo = a.openStorage(ctx)

	a.service = service.NewTaskService(a.repo)
	if err := a.service.Restore(ctx); err != nil {
		return fmt.Errorf("восстановление состояния: %w", err)
	}

	medium := notify.NewConsoleMedium()
	caps := notify.PlatformCaps{
		Notifications: a.config.Notifications.Enabled,
		Restricted:    a.config.Notifications.RestrictedPlatform,
	}

	interval := a.config.ScanInterval()
	delay := a.config.PromptDelay()
	a.worker = worker.NewDeadlineWorker(a.service, medium, caps, a.repo, &interval, &delay)

	a.initRouter()

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

// openStorage выбирает носитель по конфигу. Любой сбой sqlite или
// проваленная проверка доступности - мягкая деградация: сессия
// живёт в памяти, приложение не падает.
func (a *App) openStorage(ctx context.Context) repository.Storage {
	if a.config.Storage.Type != "sqlite" {
		logger.Info("App: Хранилище в памяти (по конфигу)")
		return inmemory.NewStorage()
	}

	repo, err := sqlite.New(ctx, a.config.Storage.Path)
	if err != nil {
		logger.Warn("App: sqlite недоступен, работаем в памяти", zap.Error(err))
		return inmemory.NewStorage()
	}

	if !repo.IsAvailable(ctx) {
		logger.Warn("App: Носитель не прошёл проверку записи, работаем в памяти")
		repo.Close()
		return inmemory.NewStorage()
	}

	a.shutdowns = append(a.shutdowns, func() {
		repo.Close()
	})
	return repo
}

func (a *App) initRouter() {
	taskHandler := handlers.NewTaskHandler(a.service)
	notificationHandler := handlers.NewNotificationHandler(a.worker)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		// Поверхность - страница в браузере на этой же машине
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.GetTasks)                    // GET /tasks?query=&sort=
		r.Post("/", taskHandler.PostTask)                   // POST /tasks
		r.Post("/toggle", taskHandler.ToggleAll)            // POST /tasks/toggle
		r.Delete("/completed", taskHandler.DeleteCompleted) // DELETE /tasks/completed?confirm=true

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", taskHandler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /tasks/{id}?confirm=true

			r.Post("/move", taskHandler.MoveTask) // POST /tasks/{id}/move
			r.Post("/step", taskHandler.StepTask) // POST /tasks/{id}/step
		})
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", notificationHandler.GetState)
		r.Post("/request", notificationHandler.RequestPermission)
		r.Post("/dismiss", notificationHandler.Dismiss)
	})

	r.Get("/health", taskHandler.HealthCheck)

	a.router = r
}

func (a *App) Run() error {
	workerCtx, cancel := context.WithCancel(context.Background())
	a.cancelWorker = cancel
	go a.worker.Start(workerCtx)

	logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск сервера: %w", err)
	}
	return nil
}

func (a *App) Shutdown() {
	logger.Info("App: Остановка...")

	if a.cancelWorker != nil {
		a.cancelWorker()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		logger.Warn("App: Ошибка остановки сервера", zap.Error(err))
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
