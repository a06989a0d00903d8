package task_test

import (
	"testing"

	"taskBoard/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPriority_Weight проверяет веса приоритетов
func TestPriority_Weight(t *testing.T) {
	assert.Equal(t, 3, task.PriorityHigh.Weight())
	assert.Equal(t, 2, task.PriorityMedium.Weight())
	assert.Equal(t, 1, task.PriorityLow.Weight())
	assert.Equal(t, 0, task.Priority("urgent").Weight())
}

// TestCompletionPercent проверяет процент выполнения по подзадачам
func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name     string
		task     task.Task
		expected int
	}{
		{
			name:     "no subtasks, not completed",
			task:     task.Task{Completed: false},
			expected: 0,
		},
		{
			name:     "no subtasks, completed",
			task:     task.Task{Completed: true},
			expected: 100,
		},
		{
			name: "half done",
			task: task.Task{SubTasks: []task.SubTask{
				{ID: 1, Completed: true},
				{ID: 2, Completed: false},
			}},
			expected: 50,
		},
		{
			name: "one of three rounds to 33",
			task: task.Task{SubTasks: []task.SubTask{
				{ID: 1, Completed: true},
				{ID: 2},
				{ID: 3},
			}},
			expected: 33,
		},
		{
			name: "two of three rounds to 67",
			task: task.Task{SubTasks: []task.SubTask{
				{ID: 1, Completed: true},
				{ID: 2, Completed: true},
				{ID: 3},
			}},
			expected: 67,
		},
		{
			name: "subtasks win over completed flag",
			task: task.Task{Completed: true, SubTasks: []task.SubTask{
				{ID: 1, Completed: false},
			}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.CompletionPercent())
		})
	}
}

// TestRandomTagColor: цвет всегда из фиксированной палитры
func TestRandomTagColor(t *testing.T) {
	palette := make(map[string]bool, len(task.TagColors))
	for _, c := range task.TagColors {
		palette[c] = true
	}

	for i := 0; i < 50; i++ {
		assert.True(t, palette[task.RandomTagColor()])
	}
}

// TestClone: глубокая копия не делит память с оригиналом
func TestClone(t *testing.T) {
	deadline := int64(12345)
	original := &task.Task{
		ID:       1,
		Title:    "original",
		Deadline: &deadline,
		Tags:     []task.Tag{{ID: 10, Name: "home", Color: task.TagColors[0]}},
		SubTasks: []task.SubTask{{ID: 20, Title: "step"}},
		Links:    []string{"https://example.com"},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Title = "changed"
	*clone.Deadline = 999
	clone.Tags[0].Name = "work"
	clone.SubTasks[0].Completed = true
	clone.Links[0] = "https://other.example"

	assert.Equal(t, "original", original.Title)
	assert.Equal(t, int64(12345), *original.Deadline)
	assert.Equal(t, "home", original.Tags[0].Name)
	assert.False(t, original.SubTasks[0].Completed)
	assert.Equal(t, "https://example.com", original.Links[0])
}

// TestClone_NilDeadline: отсутствие дедлайна сохраняется
func TestClone_NilDeadline(t *testing.T) {
	original := &task.Task{ID: 1, Title: "no deadline"}

	clone := original.Clone()

	assert.Nil(t, clone.Deadline)
}
