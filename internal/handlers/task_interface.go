package handlers

import (
	"context"

	"taskBoard/internal/models/task"
	"taskBoard/internal/notify"
	"taskBoard/internal/view"
)

type TaskService interface {
	CreateTask(ctx context.Context, title string, options ...task.Option) (*task.Task, error)
	UpdateTask(ctx context.Context, updated *task.Task) *task.Task
	DeleteTask(ctx context.Context, id int64)
	ToggleAllCompleted(ctx context.Context)
	DeleteCompleted(ctx context.Context) int
	MoveTask(ctx context.Context, from, to int) error
	MoveTaskStep(ctx context.Context, id int64, up bool) error
	List(query string, mode view.SortMode) []*task.Task
	HealthCheck(ctx context.Context) bool
}

type NotificationService interface {
	Supported() bool
	Permission() notify.Permission
	RequestPermission(ctx context.Context) (notify.Permission, error)
	Dismiss(ctx context.Context)
	Dismissed() bool
}
