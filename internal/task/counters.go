package task

import "github.com/javiermolinar/termini/internal/dateutil"

// Counters summarizes open tasks relative to today.
type Counters struct {
	Today    int
	Tomorrow int
	ThisWeek int // due from today through the next 7 days
	Overdue  int
}

// Total returns the number of open tasks that need attention this week,
// overdue ones included.
func (c Counters) Total() int {
	return c.ThisWeek + c.Overdue
}

// CountDeadlines counts open tasks by how soon they are due. Done tasks
// are ignored.
func CountDeadlines(tasks []*Task, today dateutil.Date) Counters {
	var c Counters
	for _, t := range tasks {
		if t == nil || !t.IsOpen() {
			continue
		}
		days := today.DaysUntil(t.DueDate)
		switch {
		case days < 0:
			c.Overdue++
			continue
		case days == 0:
			c.Today++
		case days == 1:
			c.Tomorrow++
		}
		if days <= 7 {
			c.ThisWeek++
		}
	}
	return c
}
