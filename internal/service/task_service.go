package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository"
	"taskBoard/internal/view"

	"go.uber.org/zap"
)

// TaskService - единственный владелец коллекции задач и
// пользовательского порядка. Все мутации проходят через него и
// сериализуются мьютексом; view и worker читают только снимки.
type TaskService struct {
	repo repository.Storage

	mtx    sync.RWMutex
	tasks  []*task.Task
	order  []int64
	lastID int64
}

func NewTaskService(repo repository.Storage) *TaskService {
	return &TaskService{
		repo:  repo,
		tasks: []*task.Task{},
		order: []int64{},
	}
}

// Restore загружает обе коллекции из носителя. Вызывается ровно один
// раз при старте, до первой записи. Сбой парсинга уже превращён мостом
// в пустые значения, так что сюда доходит только сбой самого носителя.
func (s *TaskService) Restore(ctx context.Context) error {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		logger.Warn("Service: Не удалось загрузить задачи, работаем с пустым списком", zap.Error(err))
		tasks = []*task.Task{}
	}

	order, err := s.repo.LoadOrder(ctx)
	if err != nil {
		logger.Warn("Service: Не удалось загрузить порядок, работаем с пустым", zap.Error(err))
		order = []int64{}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tasks = tasks
	s.order = reconcileOrder(tasks, order)

	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	logger.Info("Service: Состояние восстановлено",
		zap.Int("tasks", len(s.tasks)),
		zap.Int("order", len(s.order)))
	return nil
}

// reconcileOrder чинит инвариант: порядок содержит ровно id живых
// задач - висячие ссылки выкидываем, недостающие id дописываем в конец.
func reconcileOrder(tasks []*task.Task, order []int64) []int64 {
	live := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		live[t.ID] = true
	}

	res := make([]int64, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	for _, id := range order {
		if live[id] && !seen[id] {
			res = append(res, id)
			seen[id] = true
		}
	}
	for _, t := range tasks {
		if !seen[t.ID] {
			res = append(res, t.ID)
		}
	}
	return res
}

// nextID - аналог Date.now() оригинала, но с гарантией строгой
// монотонности при двух созданиях в одну миллисекунду.
func (s *TaskService) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *TaskService) CreateTask(ctx context.Context, title string, options ...task.Option) (*task.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("title", "название не может быть пустым")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := s.nextID()
	t := &task.Task{
		ID:        id,
		Title:     title,
		Priority:  task.PriorityMedium,
		Completed: false,
		CreatedAt: id,
		Tags:      []task.Tag{},
		SubTasks:  []task.SubTask{},
		Links:     []string{},
	}

	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}

	s.tasks = append(s.tasks, t)
	s.order = append(s.order, t.ID)
	s.persist(ctx)

	logger.Info("Service: Задача создана", zap.Int64("task_id", t.ID))
	return t.Clone(), nil
}

// UpdateTask заменяет задачу с совпадающим id целиком. Отсутствующий
// id - не ошибка, возвращается nil: два представления могут гоняться
// на устаревших данных.
func (s *TaskService) UpdateTask(ctx context.Context, updated *task.Task) *task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, t := range s.tasks {
		if t.ID != updated.ID {
			continue
		}

		c := updated.Clone()
		c.CreatedAt = t.CreatedAt // неизменяемые поля
		s.normalize(c)
		s.tasks[i] = c
		s.persist(ctx)

		logger.Info("Service: Задача обновлена", zap.Int64("task_id", c.ID))
		return c.Clone()
	}

	logger.Info("Service: Задача для обновления не найдена", zap.Int64("task_id", updated.ID))
	return nil
}

// normalize дозаполняет ярлыки и подзадачи, пришедшие с клиента без
// id или цвета: id выдаём из той же монотонной последовательности,
// цвет - случайный из палитры (как при создании в оригинале).
func (s *TaskService) normalize(t *task.Task) {
	if t.Tags == nil {
		t.Tags = []task.Tag{}
	}
	if t.SubTasks == nil {
		t.SubTasks = []task.SubTask{}
	}
	if t.Links == nil {
		t.Links = []string{}
	}

	for i := range t.Tags {
		if t.Tags[i].ID == 0 {
			t.Tags[i].ID = s.nextID()
		}
		if t.Tags[i].Color == "" {
			t.Tags[i].Color = task.RandomTagColor()
		}
	}
	for i := range t.SubTasks {
		if t.SubTasks[i].ID == 0 {
			t.SubTasks[i].ID = s.nextID()
		}
	}

	links := t.Links[:0]
	for _, l := range t.Links {
		if strings.TrimSpace(l) != "" {
			links = append(links, l)
		}
	}
	t.Links = links
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}

		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.removeFromOrder(id)
		s.persist(ctx)

		logger.Info("Service: Задача удалена", zap.Int64("task_id", id))
		return
	}

	logger.Info("Service: Задача для удаления не найдена", zap.Int64("task_id", id))
}

func (s *TaskService) removeFromOrder(id int64) {
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// ToggleAllCompleted: если завершены все - снимаем отметку со всех,
// иначе завершаем все.
func (s *TaskService) ToggleAllCompleted(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	allCompleted := len(s.tasks) > 0
	for _, t := range s.tasks {
		if !t.Completed {
			allCompleted = false
			break
		}
	}

	for _, t := range s.tasks {
		t.Completed = !allCompleted
	}
	s.persist(ctx)

	logger.Info("Service: Массовое переключение завершённости",
		zap.Bool("completed", !allCompleted),
		zap.Int("tasks", len(s.tasks)))
}

// DeleteCompleted удаляет все завершённые задачи. Возвращает количество
// удалённых. Подтверждение - забота вызывающего слоя.
func (s *TaskService) DeleteCompleted(ctx context.Context) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			s.removeFromOrder(t.ID)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept

	if removed > 0 {
		s.persist(ctx)
	}

	logger.Info("Service: Завершённые задачи удалены", zap.Int("removed", removed))
	return removed
}

// MoveTask - перетаскивание: вынимаем элемент пользовательского порядка
// с позиции from и вставляем на позицию to.
func (s *TaskService) MoveTask(ctx context.Context, from, to int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if from < 0 || from >= len(s.order) {
		return NewOutOfRangeError(from)
	}
	if to < 0 || to >= len(s.order) {
		return NewOutOfRangeError(to)
	}
	if from == to {
		return nil
	}

	id := s.order[from]
	s.order = append(s.order[:from], s.order[from+1:]...)
	s.order = append(s.order[:to], append([]int64{id}, s.order[to:]...)...)
	s.persist(ctx)

	logger.Info("Service: Задача перемещена",
		zap.Int64("task_id", id),
		zap.Int("from", from),
		zap.Int("to", to))
	return nil
}

// MoveTaskStep - шаг кнопкой вверх/вниз, тем же правилом
// вынуть-вставить, на одну позицию. Шаг у края списка - тихий no-op:
// двигаться некуда, это не ошибка.
func (s *TaskService) MoveTaskStep(ctx context.Context, id int64, up bool) error {
	s.mtx.RLock()
	n := len(s.order)
	from := -1
	for i, oid := range s.order {
		if oid == id {
			from = i
			break
		}
	}
	s.mtx.RUnlock()

	if from == -1 {
		return NewOutOfRangeError(-1)
	}

	to := from + 1
	if up {
		to = from - 1
	}
	if to < 0 || to >= n {
		return nil
	}
	return s.MoveTask(ctx, from, to)
}

// Snapshot возвращает глубокую копию коллекции в её каноническом
// порядке. Worker и view тянут его на каждый тик заново.
func (s *TaskService) Snapshot() []*task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.snapshotLocked()
}

func (s *TaskService) snapshotLocked() []*task.Task {
	res := make([]*task.Task, len(s.tasks))
	for i, t := range s.tasks {
		res[i] = t.Clone()
	}
	return res
}

func (s *TaskService) Order() []int64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]int64, len(s.order))
	copy(res, s.order)
	return res
}

// List - производное представление: фильтр по запросу плюс сортировка.
func (s *TaskService) List(query string, mode view.SortMode) []*task.Task {
	s.mtx.RLock()
	tasks := s.snapshotLocked()
	order := make([]int64, len(s.order))
	copy(order, s.order)
	s.mtx.RUnlock()

	return view.Derive(tasks, query, mode, order)
}

func (s *TaskService) HealthCheck(ctx context.Context) bool {
	return s.repo.IsAvailable(ctx)
}

// persist зеркалит обе коллекции в носитель после каждой мутации.
// Сбой записи только логируется: приложение продолжает жить в памяти.
func (s *TaskService) persist(ctx context.Context) {
	if err := s.repo.SaveTasks(ctx, s.tasks); err != nil {
		logger.Warn("Service: Не удалось сохранить задачи", zap.Error(err))
	}
	if err := s.repo.SaveOrder(ctx, s.order); err != nil {
		logger.Warn("Service: Не удалось сохранить порядок", zap.Error(err))
	}
}
