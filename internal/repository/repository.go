package repository

import (
	"context"
	"errors"

	"taskBoard/internal/models/task"
)

// Фиксированные ключи хранилища. Формат значения - JSON-текст,
// round-trip обязан сохранять каждое поле, включая отсутствующий deadline.
const KeyTasks = "tasks"
const KeyOrder = "taskOrder"
const KeyPromptDismissed = "notifyPromptDismissed"

var ErrNotFound = errors.New("ключ не найден")

// Storage - мост к key-value носителю. Ошибки чтения и парсинга
// не должны ронять приложение: Load* возвращают пустые значения,
// вызывающий лишь логирует сбой записи.
type Storage interface {
	// IsAvailable проверяет носитель пробной записью и удалением
	// одноразового ключа; false при любом сбое.
	IsAvailable(ctx context.Context) bool

	LoadTasks(ctx context.Context) ([]*task.Task, error)
	SaveTasks(ctx context.Context, tasks []*task.Task) error

	LoadOrder(ctx context.Context) ([]int64, error)
	SaveOrder(ctx context.Context, order []int64) error

	LoadPromptDismissed(ctx context.Context) bool
	SavePromptDismissed(ctx context.Context, dismissed bool) error

	Close() error
}
