package inmemory_test

import (
	"context"
	"os"
	"testing"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// TestStorage_IsAvailable: память доступна всегда
func TestStorage_IsAvailable(t *testing.T) {
	storage := inmemory.NewStorage()
	assert.True(t, storage.IsAvailable(context.Background()))
}

// TestStorage_EmptyDefaults: отсутствующие ключи - пустые значения, не ошибка
func TestStorage_EmptyDefaults(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	tasks, err := storage.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	order, err := storage.LoadOrder(ctx)
	require.NoError(t, err)
	assert.Empty(t, order)

	assert.False(t, storage.LoadPromptDismissed(ctx))
}

// TestStorage_RoundTrip: сохранение и загрузка воспроизводят коллекцию
// поле в поле, включая отсутствующий deadline
func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	deadline := int64(1900000000000)
	tasks := []*task.Task{
		{
			ID:        1,
			Title:     "with everything",
			Priority:  task.PriorityHigh,
			CreatedAt: 1,
			Deadline:  &deadline,
			Tags:      []task.Tag{{ID: 11, Name: "home", Color: task.TagColors[2]}},
			SubTasks:  []task.SubTask{{ID: 21, Title: "step", Completed: true}},
			Notes:     "some notes",
			Links:     []string{"https://example.com"},
		},
		{
			ID:        2,
			Title:     "bare",
			Priority:  task.PriorityLow,
			CreatedAt: 2,
			Tags:      []task.Tag{},
			SubTasks:  []task.SubTask{},
			Links:     []string{},
		},
	}

	require.NoError(t, storage.SaveTasks(ctx, tasks))
	loaded, err := storage.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, loaded)

	// deadline: отсутствие отличимо от нуля
	require.NotNil(t, loaded[0].Deadline)
	assert.Nil(t, loaded[1].Deadline)

	order := []int64{2, 1}
	require.NoError(t, storage.SaveOrder(ctx, order))
	loadedOrder, err := storage.LoadOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, order, loadedOrder)
}

// TestStorage_PromptDismissed
func TestStorage_PromptDismissed(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	require.NoError(t, storage.SavePromptDismissed(ctx, true))
	assert.True(t, storage.LoadPromptDismissed(ctx))

	require.NoError(t, storage.SavePromptDismissed(ctx, false))
	assert.False(t, storage.LoadPromptDismissed(ctx))
}
