package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Storage - долговременный key-value носитель поверх единственной
// таблицы kv. Схема нарочно примитивная: приложение однопользовательское,
// весь стейт - два текстовых значения.
type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("Repository: Ошибка открытия sqlite", err)
		return nil, fmt.Errorf("открытие sqlite: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		logger.Error("Repository: Ошибка создания схемы", err)
		return nil, fmt.Errorf("создание схемы: %w", err)
	}

	logger.Info("Repository: Успешное открытие sqlite", zap.String("path", path))
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	logger.Info("Repository: Закрытие sqlite")
	return s.db.Close()
}

func (s *Storage) IsAvailable(ctx context.Context) bool {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv (key, value) VALUES ('__probe__', '1')`); err != nil {
		logger.Warn("Repository: Носитель недоступен для записи", zap.Error(err))
		return false
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = '__probe__'`); err != nil {
		logger.Warn("Repository: Носитель недоступен для удаления", zap.Error(err))
		return false
	}
	return true
}

func (s *Storage) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("чтение ключа %s: %w", key, err)
	}
	return value, nil
}

func (s *Storage) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("запись ключа %s: %w", key, err)
	}
	return nil
}

func (s *Storage) LoadTasks(ctx context.Context) ([]*task.Task, error) {
	raw, err := s.get(ctx, repository.KeyTasks)
	if errors.Is(err, repository.ErrNotFound) {
		return []*task.Task{}, nil
	}
	if err != nil {
		return nil, err
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
		return fmt.Errorf("сериализация задач: %w", err)
	}
	return s.set(ctx, repository.KeyTasks, string(data))
}

func (s *Storage) LoadOrder(ctx context.Context) ([]int64, error) {
	raw, err := s.get(ctx, repository.KeyOrder)
	if errors.Is(err, repository.ErrNotFound) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, err
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
		return fmt.Errorf("сериализация порядка: %w", err)
	}
	return s.set(ctx, repository.KeyOrder, string(data))
}

func (s *Storage) LoadPromptDismissed(ctx context.Context) bool {
	raw, err := s.get(ctx, repository.KeyPromptDismissed)
	if err != nil {
		return false
	}
	return raw == "true"
}

func (s *Storage) SavePromptDismissed(ctx context.Context, dismissed bool) error {
	if dismissed {
		return s.set(ctx, repository.KeyPromptDismissed, "true")
	}
	return s.set(ctx, repository.KeyPromptDismissed, "false")
}
