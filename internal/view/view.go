package view

import (
	"sort"
	"strings"

	"taskBoard/internal/models/task"
)

type SortMode string

const SortCreatedAt SortMode = "createdAt"
const SortPriority SortMode = "priority"
const SortCustom SortMode = "custom"
const SortDeadline SortMode = "deadline"

func (m SortMode) Valid() bool {
	return m == SortCreatedAt || m == SortPriority || m == SortCustom || m == SortDeadline
}

// Derive - чистая функция от (tasks, query, mode, order),
// пересчитывается на каждый запрос, ничего не кэширует.
func Derive(tasks []*task.Task, query string, mode SortMode, order []int64) []*task.Task {
	return Sort(Filter(tasks, query), mode, order)
}

// Filter оставляет задачи, у которых query входит в название или
// описание без учёта регистра. Пустой запрос пропускает все.
func Filter(tasks []*task.Task, query string) []*task.Task {
	if query == "" {
		return tasks
	}

	q := strings.ToLower(query)
	res := []*task.Task{}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			res = append(res, t)
		}
	}
	return res
}

// Sort возвращает новый срез, исходный не трогает.
func Sort(tasks []*task.Task, mode SortMode, order []int64) []*task.Task {
	res := make([]*task.Task, len(tasks))
	copy(res, tasks)

	switch mode {
	case SortPriority:
		sort.SliceStable(res, func(i, j int) bool {
			wi, wj := res[i].Priority.Weight(), res[j].Priority.Weight()
			if wi != wj {
				return wi > wj
			}
			return res[i].CreatedAt > res[j].CreatedAt
		})

	case SortDeadline:
		// Задачи без дедлайна всегда после задач с дедлайном,
		// между собой - по убыванию даты создания.
		sort.SliceStable(res, func(i, j int) bool {
			di, dj := res[i].Deadline, res[j].Deadline
			if di != nil && dj != nil {
				return *di < *dj
			}
			if di != nil {
				return true
			}
			if dj != nil {
				return false
			}
			return res[i].CreatedAt > res[j].CreatedAt
		})

	case SortCustom:
		// Id, которых нет в пользовательском порядке, уходят в конец
		// (вместо indexOf == -1 из оригинала), между собой - по
		// убыванию даты создания.
		index := make(map[int64]int, len(order))
		for i, id := range order {
			index[id] = i
		}
		sort.SliceStable(res, func(i, j int) bool {
			pi, iok := index[res[i].ID]
			pj, jok := index[res[j].ID]
			if iok && jok {
				return pi < pj
			}
			if iok {
				return true
			}
			if jok {
				return false
			}
			return res[i].CreatedAt > res[j].CreatedAt
		})

	default: // SortCreatedAt
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].CreatedAt > res[j].CreatedAt
		})
	}

	return res
}
