package dto

import (
	"time"

	"taskBoard/internal/models/task"
)

type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    task.Priority `json:"priority"`
	Deadline    *int64        `json:"deadline,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

type MoveRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

type StepRequest struct {
	Direction string `json:"direction"` // "up" или "down"
}

type TaskResponse struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    task.Priority  `json:"priority"`
	Completed   bool           `json:"completed"`
	CreatedAt   int64          `json:"createdAt"`
	Deadline    *int64         `json:"deadline,omitempty"`
	Tags        []task.Tag     `json:"tags"`
	SubTasks    []task.SubTask `json:"subTasks"`
	Notes       string         `json:"notes"`
	Links       []string       `json:"links"`
	Completion  int            `json:"completion"`
	IsOverdue   bool           `json:"is_overdue"`
}

func FromTask(t *task.Task) TaskResponse {
	isOverdue := false
	if t.Deadline != nil && !t.Completed {
		isOverdue = *t.Deadline < time.Now().UnixMilli()
	}

	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		Deadline:    t.Deadline,
		Tags:        t.Tags,
		SubTasks:    t.SubTasks,
		Notes:       t.Notes,
		Links:       t.Links,
		Completion:  t.CompletionPercent(),
		IsOverdue:   isOverdue,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
