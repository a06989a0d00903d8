package task

type Option func(*Task)

func WithDescription(description string) Option {
	if description == "" {
		return nil
	}
	return func(task *Task) {
		task.Description = description
	}
}

func WithPriority(priority Priority) Option {
	if !priority.Valid() {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithDeadline(deadline *int64) Option {
	if deadline == nil {
		return nil
	}
	return func(task *Task) {
		d := *deadline
		task.Deadline = &d
	}
}

func WithNotes(notes string) Option {
	if notes == "" {
		return nil
	}
	return func(task *Task) {
		task.Notes = notes
	}
}
