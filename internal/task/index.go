package task

import "github.com/javiermolinar/termini/internal/dateutil"

// Index groups tasks by due date.
type Index struct {
	byDate map[dateutil.Date][]*Task
	n      int
}

// BuildIndex builds an Index in one pass. Tasks keep their input order
// within a date. Nil tasks are skipped.
func BuildIndex(tasks []*Task) *Index {
	idx := &Index{byDate: make(map[dateutil.Date][]*Task)}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		idx.byDate[t.DueDate] = append(idx.byDate[t.DueDate], t)
		idx.n++
	}
	return idx
}

// TasksForDate returns the tasks due on d, in input order. The returned
// slice is a copy and never nil.
func (idx *Index) TasksForDate(d dateutil.Date) []*Task {
	tasks := idx.byDate[d]
	out := make([]*Task, len(tasks))
	copy(out, tasks)
	return out
}

// Dates returns the number of distinct due dates.
func (idx *Index) Dates() int {
	return len(idx.byDate)
}

// Len returns the number of indexed tasks.
func (idx *Index) Len() int {
	return idx.n
}
