package inmemory

import (
	"context"
	"encoding/json"
	"sync"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository"

	"go.uber.org/zap"
)

// Storage хранит те же текстовые значения под теми же ключами,
// что и долговременный носитель, но в map. Используется как
// мягкая деградация при недоступном sqlite и как дублёр в тестах.
type Storage struct {
	values map[string]string
	mtx    *sync.RWMutex
}

func NewStorage() *Storage {
	return &Storage{
		values: make(map[string]string),
		mtx:    &sync.RWMutex{},
	}
}

func (s *Storage) IsAvailable(ctx context.Context) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.values["__probe__"] = "1"
	delete(s.values, "__probe__")
	return true
}

func (s *Storage) get(key string) (string, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	val, ok := s.values[key]
	return val, ok
}

func (s *Storage) set(key, value string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.values[key] = value
}

func (s *Storage) LoadTasks(ctx context.Context) ([]*task.Task, error) {
	raw, ok := s.get(repository.KeyTasks)
	if !ok {
		return []*task.Task{}, nil
	}

	var tasks []*task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		logger.Warn("Repository: Повреждённые данные задач, начинаем с пустого списка", zap.Error(err))
		return []*task.Task{}, nil
	}
	return tasks, nil
}

func (s *Storage) SaveTasks(ctx context.Context, tasks []*task.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	s.set(repository.KeyTasks, string(data))
	return nil
}

func (s *Storage) LoadOrder(ctx context.Context) ([]int64, error) {
	raw, ok := s.get(repository.KeyOrder)
	if !ok {
		return []int64{}, nil
	}

	var order []int64
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		logger.Warn("Repository: Повреждённый пользовательский порядок, начинаем с пустого", zap.Error(err))
		return []int64{}, nil
	}
	return order, nil
}

func (s *Storage) SaveOrder(ctx context.Context, order []int64) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	s.set(repository.KeyOrder, string(data))
	return nil
}

func (s *Storage) LoadPromptDismissed(ctx context.Context) bool {
	raw, ok := s.get(repository.KeyPromptDismissed)
	return ok && raw == "true"
}

func (s *Storage) SavePromptDismissed(ctx context.Context, dismissed bool) error {
	if dismissed {
		s.set(repository.KeyPromptDismissed, "true")
	} else {
		s.set(repository.KeyPromptDismissed, "false")
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
