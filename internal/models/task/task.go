package task

import "math/rand"

type Priority string

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

// Weight используется только для сортировки по приоритету.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type SubTask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   int64     `json:"createdAt"`
	Deadline    *int64    `json:"deadline,omitempty"`
	Tags        []Tag     `json:"tags"`
	SubTasks    []SubTask `json:"subTasks"`
	Notes       string    `json:"notes"`
	Links       []string  `json:"links"`
}

// Фиксированная палитра цветов для ярлыков
var TagColors = []string{
	"bg-blue-500/30 text-blue-300",
	"bg-green-500/30 text-green-300",
	"bg-yellow-500/30 text-yellow-300",
	"bg-red-500/30 text-red-300",
	"bg-purple-500/30 text-purple-300",
	"bg-pink-500/30 text-pink-300",
}

func RandomTagColor() string {
	return TagColors[rand.Intn(len(TagColors))]
}

// CompletionPercent считает процент выполнения по подзадачам.
// Без подзадач: 100 для завершённой задачи, иначе 0.
func (t *Task) CompletionPercent() int {
	if len(t.SubTasks) == 0 {
		if t.Completed {
			return 100
		}
		return 0
	}

	completed := 0
	for _, st := range t.SubTasks {
		if st.Completed {
			completed++
		}
	}
	return int(float64(completed)/float64(len(t.SubTasks))*100 + 0.5)
}

// Clone возвращает глубокую копию задачи, чтобы наблюдатели
// (view, worker) не могли изменить оригинал.
func (t *Task) Clone() *Task {
	c := *t

	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.Tags != nil {
		c.Tags = make([]Tag, len(t.Tags))
		copy(c.Tags, t.Tags)
	}
	if t.SubTasks != nil {
		c.SubTasks = make([]SubTask, len(t.SubTasks))
		copy(c.SubTasks, t.SubTasks)
	}
	if t.Links != nil {
		c.Links = make([]string, len(t.Links))
		copy(c.Links, t.Links)
	}
	return &c
}
