package domain

// Snapshot is the full state handed to and received from storage. Epic derived
// fields inside a snapshot are informational; they are recomputed on restore.
type Snapshot struct {
	Tasks    []Task
	Epics    []Task
	Subtasks []Task
	History  []int
}

func (s Snapshot) Empty() bool {
	return len(s.Tasks) == 0 && len(s.Epics) == 0 && len(s.Subtasks) == 0
}

// All returns tasks, epics and subtasks in that order.
func (s Snapshot) All() []Task {
	all := make([]Task, 0, len(s.Tasks)+len(s.Epics)+len(s.Subtasks))
	all = append(all, s.Tasks...)
	all = append(all, s.Epics...)
	all = append(all, s.Subtasks...)
	return all
}

// Add places task in the slice matching its type.
func (s *Snapshot) Add(task Task) error {
	switch task.Type {
	case TypeTask:
		s.Tasks = append(s.Tasks, task)
	case TypeEpic:
		s.Epics = append(s.Epics, task)
	case TypeSubtask:
		s.Subtasks = append(s.Subtasks, task)
	default:
		return ErrInvalidTask
	}
	return nil
}
