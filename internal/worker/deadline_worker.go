package worker

import (
	"context"
	"sync"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/notify"
	"taskBoard/internal/repository"

	"go.uber.org/zap"
)

// TaskSource - хранилище задач глазами воркера: только свежий снимок.
// Список никогда не захватывается при старте, каждый тик - новый pull.
type TaskSource interface {
	Snapshot() []*task.Task
}

type firedKey struct {
	tier Tier
	id   int64
}

// DeadlineWorker периодически сканирует задачи и шлёт не больше
// одного уведомления на пару (ярус, задача).
type DeadlineWorker struct {
	source   TaskSource
	medium   notify.Medium
	caps     notify.Capabilities
	repo     repository.Storage
	interval time.Duration
	delay    time.Duration

	mtx       sync.Mutex
	fired     map[firedKey]struct{}
	dismissed bool
}

func NewDeadlineWorker(
	source TaskSource,
	medium notify.Medium,
	caps notify.Capabilities,
	repo repository.Storage,
	interval *time.Duration,
	promptDelay *time.Duration,
) *DeadlineWorker {
	intervalToSet := 60 * time.Second
	if interval != nil {
		intervalToSet = *interval
	}

	delayToSet := 2 * time.Second
	if promptDelay != nil {
		delayToSet = *promptDelay
	}

	return &DeadlineWorker{
		source:   source,
		medium:   medium,
		caps:     caps,
		repo:     repo,
		interval: intervalToSet,
		delay:    delayToSet,
		fired:    make(map[firedKey]struct{}),
	}
}

// Start ведёт рукопожатие разрешения и крутит сканер, пока жив ctx.
// Горутина не завершается без granted: разрешение может прийти позже
// явным запросом, в том числе после записанного отказа от промпта.
func (w *DeadlineWorker) Start(ctx context.Context) {
	if !w.medium.Supported() || !w.caps.SupportsNotifications() {
		logger.Info("Worker: Носитель уведомлений не поддерживается, сканер не запускается")
		return
	}

	w.mtx.Lock()
	w.dismissed = w.repo.LoadPromptDismissed(ctx)
	dismissed := w.dismissed
	w.mtx.Unlock()

	if w.medium.Permission() == notify.PermissionDefault && !dismissed && !w.caps.IsRestrictedPlatform() {
		// Автозапрос один раз, через фиксированную паузу после старта.
		select {
		case <-time.After(w.delay):
		case <-ctx.Done():
			return
		}

		if _, err := w.medium.RequestPermission(ctx); err != nil {
			logger.Warn("Worker: Ошибка запроса разрешения", zap.Error(err))
		}
	}

	logger.Info("Worker: Наблюдение за дедлайнами запущено",
		zap.Duration("interval", w.interval),
		zap.String("permission", string(w.medium.Permission())))

	active := w.medium.Permission() == notify.PermissionGranted
	if active {
		w.Check(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			granted := w.medium.Permission() == notify.PermissionGranted
			switch {
			case granted && !active:
				active = true
				logger.Info("Worker: Разрешение выдано, сканер активирован")
				w.Check(ctx)
			case granted:
				w.Check(ctx)
			case active:
				active = false
				logger.Info("Worker: Разрешение отозвано, сканер приостановлен")
			}
		case <-ctx.Done():
			logger.Info("Worker: Наблюдение за дедлайнами останавливается")
			return
		}
	}
}

// Check - один проход сканера по свежему снимку хранилища.
func (w *DeadlineWorker) Check(ctx context.Context) {
	if w.caps.IsRestrictedPlatform() {
		return
	}

	start := time.Now()
	tasks := w.source.Snapshot()
	now := start.UnixMilli()

	w.mtx.Lock()
	defer w.mtx.Unlock()

	w.pruneFired(tasks)

	alerted := 0
	for _, t := range tasks {
		if t.Completed || t.Deadline == nil {
			continue
		}

		remaining := time.Duration(*t.Deadline-now) * time.Millisecond
		tier := ClassifyRemaining(remaining)
		if tier == TierNone {
			continue
		}

		key := firedKey{tier: tier, id: t.ID}
		if _, ok := w.fired[key]; ok {
			continue
		}

		if err := w.medium.Send(ctx, tier.Alert(t.ID, t.Title)); err != nil {
			logger.Warn("Worker: Ошибка отправки уведомления",
				zap.Int64("task_id", t.ID),
				zap.Error(err))
			continue
		}

		w.fired[key] = struct{}{}
		alerted++
	}

	logger.Info("Worker: Завершение прохода сканера",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(tasks)),
		zap.Int("alerted", alerted))
}

// pruneFired выбрасывает ключи дедупликации задач, которые завершены
// или удалены: при возврате задачи в работу ярусы срабатывают заново.
func (w *DeadlineWorker) pruneFired(tasks []*task.Task) {
	active := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			active[t.ID] = true
		}
	}

	for key := range w.fired {
		if !active[key.id] {
			delete(w.fired, key)
		}
	}
}

// Permission отдаёт состояние носителя как есть: «не поддерживается»
// видно отдельным полем, в denied его не сворачиваем.
func (w *DeadlineWorker) Permission() notify.Permission {
	return w.medium.Permission()
}

func (w *DeadlineWorker) Supported() bool {
	return w.medium.Supported() && w.caps.SupportsNotifications()
}

// RequestPermission - явный запрос с поверхности (кнопка «Разрешить»).
// Выдача запускает немедленный проход, не дожидаясь следующего тика.
func (w *DeadlineWorker) RequestPermission(ctx context.Context) (notify.Permission, error) {
	perm, err := w.medium.RequestPermission(ctx)
	if err == nil && perm == notify.PermissionGranted {
		w.Check(ctx)
	}
	return perm, err
}

// Dismiss фиксирует отказ пользователя от промпта, чтобы не
// спрашивать повторно при следующих запусках.
func (w *DeadlineWorker) Dismiss(ctx context.Context) {
	w.mtx.Lock()
	w.dismissed = true
	w.mtx.Unlock()

	if err := w.repo.SavePromptDismissed(ctx, true); err != nil {
		logger.Warn("Worker: Не удалось сохранить отказ от промпта", zap.Error(err))
	}
}

func (w *DeadlineWorker) Dismissed() bool {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	return w.dismissed
}
