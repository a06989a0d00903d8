package view_test

import (
	"testing"

	"taskBoard/internal/models/task"
	"taskBoard/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadlineAt(ts int64) *int64 {
	return &ts
}

// TestFilter проверяет поиск по подстроке без учёта регистра
func TestFilter(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, Title: "Buy milk", CreatedAt: 1},
		{ID: 2, Title: "Walk dog", CreatedAt: 2},
		{ID: 3, Title: "Call mom", Description: "about milk delivery", CreatedAt: 3},
	}

	tests := []struct {
		name     string
		query    string
		expected []int64
	}{
		{
			name:     "empty query keeps all",
			query:    "",
			expected: []int64{1, 2, 3},
		},
		{
			name:     "matches title",
			query:    "milk",
			expected: []int64{1, 3},
		},
		{
			name:     "case insensitive",
			query:    "MILK",
			expected: []int64{1, 3},
		},
		{
			name:     "matches description",
			query:    "delivery",
			expected: []int64{3},
		},
		{
			name:     "no matches",
			query:    "xyz",
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := view.Filter(tasks, tt.query)

			ids := []int64{}
			for _, tk := range res {
				ids = append(ids, tk.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

// TestSort_CreatedAt проверяет сортировку по дате создания (новые сверху)
func TestSort_CreatedAt(t *testing.T) {
	tasks := []*task.Task{
		{ID: 100, CreatedAt: 100},
		{ID: 300, CreatedAt: 300},
		{ID: 200, CreatedAt: 200},
	}

	res := view.Sort(tasks, view.SortCreatedAt, nil)

	require.Len(t, res, 3)
	assert.Equal(t, int64(300), res[0].ID)
	assert.Equal(t, int64(200), res[1].ID)
	assert.Equal(t, int64(100), res[2].ID)
}

// TestSort_Priority проверяет вес приоритета и разрешение ничьей
// по убыванию даты создания
func TestSort_Priority(t *testing.T) {
	a := &task.Task{ID: 1, Title: "A", Priority: task.PriorityHigh, CreatedAt: 100}
	b := &task.Task{ID: 2, Title: "B", Priority: task.PriorityHigh, CreatedAt: 200}
	c := &task.Task{ID: 3, Title: "C", Priority: task.PriorityLow, CreatedAt: 300}
	d := &task.Task{ID: 4, Title: "D", Priority: task.PriorityMedium, CreatedAt: 400}

	res := view.Sort([]*task.Task{a, c, b, d}, view.SortPriority, nil)

	require.Len(t, res, 4)
	// High и High: ничья решается более поздним createdAt
	assert.Equal(t, "B", res[0].Title)
	assert.Equal(t, "A", res[1].Title)
	assert.Equal(t, "D", res[2].Title)
	assert.Equal(t, "C", res[3].Title)
}

// TestSort_Deadline: задачи без дедлайна всегда после задач с дедлайном
func TestSort_Deadline(t *testing.T) {
	withEarly := &task.Task{ID: 1, Deadline: deadlineAt(1000), CreatedAt: 1}
	withLate := &task.Task{ID: 2, Deadline: deadlineAt(5000), CreatedAt: 2}
	without1 := &task.Task{ID: 3, CreatedAt: 300}
	without2 := &task.Task{ID: 4, CreatedAt: 400}

	res := view.Sort([]*task.Task{without1, withLate, without2, withEarly}, view.SortDeadline, nil)

	require.Len(t, res, 4)
	assert.Equal(t, int64(1), res[0].ID)
	assert.Equal(t, int64(2), res[1].ID)
	// без дедлайна - по убыванию даты создания
	assert.Equal(t, int64(4), res[2].ID)
	assert.Equal(t, int64(3), res[3].ID)
}

// TestSort_Custom проверяет пользовательский порядок и правило для id,
// отсутствующих в нём: такие уходят в конец
func TestSort_Custom(t *testing.T) {
	t1 := &task.Task{ID: 1, CreatedAt: 1}
	t2 := &task.Task{ID: 2, CreatedAt: 2}
	t3 := &task.Task{ID: 3, CreatedAt: 3}
	orphan := &task.Task{ID: 9, CreatedAt: 9}

	res := view.Sort([]*task.Task{t1, t2, orphan, t3}, view.SortCustom, []int64{3, 1, 2})

	require.Len(t, res, 4)
	assert.Equal(t, int64(3), res[0].ID)
	assert.Equal(t, int64(1), res[1].ID)
	assert.Equal(t, int64(2), res[2].ID)
	assert.Equal(t, int64(9), res[3].ID)
}

// TestSort_DoesNotMutateInput: сортировка не трогает исходный срез
func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, CreatedAt: 1},
		{ID: 2, CreatedAt: 2},
	}

	_ = view.Sort(tasks, view.SortCreatedAt, nil)

	assert.Equal(t, int64(1), tasks[0].ID)
	assert.Equal(t, int64(2), tasks[1].ID)
}

// TestDerive: фильтр и сортировка вместе
func TestDerive(t *testing.T) {
	tasks := []*task.Task{
		{ID: 1, Title: "Buy milk", Priority: task.PriorityLow, CreatedAt: 1},
		{ID: 2, Title: "Buy milk again", Priority: task.PriorityHigh, CreatedAt: 2},
		{ID: 3, Title: "Walk dog", Priority: task.PriorityHigh, CreatedAt: 3},
	}

	res := view.Derive(tasks, "milk", view.SortPriority, nil)

	require.Len(t, res, 2)
	assert.Equal(t, int64(2), res[0].ID)
	assert.Equal(t, int64(1), res[1].ID)
}

// TestSortMode_Valid
func TestSortMode_Valid(t *testing.T) {
	assert.True(t, view.SortCreatedAt.Valid())
	assert.True(t, view.SortPriority.Valid())
	assert.True(t, view.SortCustom.Valid())
	assert.True(t, view.SortDeadline.Valid())
	assert.False(t, view.SortMode("alphabet").Valid())
}
