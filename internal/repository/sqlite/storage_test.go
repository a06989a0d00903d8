package sqlite_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func openStorage(t *testing.T, path string) *sqlite.Storage {
	t.Helper()
	storage, err := sqlite.New(context.Background(), path)
	require.NoError(t, err)
	return storage
}

// TestStorage_IsAvailable: проба записью и удалением проходит
func TestStorage_IsAvailable(t *testing.T) {
	storage := openStorage(t, filepath.Join(t.TempDir(), "test.db"))
	defer storage.Close()

	assert.True(t, storage.IsAvailable(context.Background()))
}

// TestStorage_RoundTrip: состояние переживает переоткрытие файла
func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	deadline := int64(1900000000000)
	tasks := []*task.Task{
		{
			ID:        1,
			Title:     "persisted",
			Priority:  task.PriorityMedium,
			CreatedAt: 1,
			Deadline:  &deadline,
			Tags:      []task.Tag{{ID: 11, Name: "home", Color: task.TagColors[0]}},
			SubTasks:  []task.SubTask{{ID: 21, Title: "step"}},
			Notes:     "note",
			Links:     []string{"https://example.com"},
		},
		{
			ID:        2,
			Title:     "no deadline",
			Priority:  task.PriorityLow,
			CreatedAt: 2,
			Tags:      []task.Tag{},
			SubTasks:  []task.SubTask{},
			Links:     []string{},
		},
	}
	order := []int64{2, 1}

	storage := openStorage(t, path)
	require.NoError(t, storage.SaveTasks(ctx, tasks))
	require.NoError(t, storage.SaveOrder(ctx, order))
	require.NoError(t, storage.SavePromptDismissed(ctx, true))
	require.NoError(t, storage.Close())

	reopened := openStorage(t, path)
	defer reopened.Close()

	loaded, err := reopened.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, loaded)
	require.NotNil(t, loaded[0].Deadline)
	assert.Equal(t, deadline, *loaded[0].Deadline)
	assert.Nil(t, loaded[1].Deadline)

	loadedOrder, err := reopened.LoadOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, order, loadedOrder)

	assert.True(t, reopened.LoadPromptDismissed(ctx))
}

// TestStorage_EmptyDefaults: свежая база - пустые значения
func TestStorage_EmptyDefaults(t *testing.T) {
	ctx := context.Background()
	storage := openStorage(t, filepath.Join(t.TempDir(), "test.db"))
	defer storage.Close()

	tasks, err := storage.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	order, err := storage.LoadOrder(ctx)
	require.NoError(t, err)
	assert.Empty(t, order)

	assert.False(t, storage.LoadPromptDismissed(ctx))
}

// TestStorage_CorruptedValue: повреждённый JSON не роняет загрузку,
// возвращается пустой список
func TestStorage_CorruptedValue(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	storage := openStorage(t, path)
	require.NoError(t, storage.Close())

	// портим значение напрямую в файле базы
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES ('tasks', 'not json'), ('taskOrder', '{broken')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened := openStorage(t, path)
	defer reopened.Close()

	tasks, err := reopened.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	order, err := reopened.LoadOrder(ctx)
	require.NoError(t, err)
	assert.Empty(t, order)
}
