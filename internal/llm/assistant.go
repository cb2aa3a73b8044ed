package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/javiermolinar/termini/internal/dateutil"
	"github.com/javiermolinar/termini/internal/task"
)

// maxContextTasks caps the task lines sent with a question.
const maxContextTasks = 80

const systemPrompt = `You are the assistant of an Italian law office. You answer questions about the office's procedural deadlines.

Rules:
- Answer in the language of the question.
- Use only the deadlines and counters listed below. If they do not contain the answer, say so.
- Do not invent legal rules, terms or dates. Do not give legal advice.
- Dates are day/month/year. Keep answers short and list deadlines in date order.`

// Snapshot is the calendar state sent to the model with a question.
type Snapshot struct {
	Today    dateutil.Date
	Counters task.Counters
	Tasks    []*task.Task // open tasks, overdue ones included, in due order
}

// BuildSnapshot collects the open tasks due up to horizonDays after today,
// overdue ones included, and counts them.
func BuildSnapshot(ctx context.Context, store task.Store, today dateutil.Date, horizonDays int) (*Snapshot, error) {
	if horizonDays < 0 {
		return nil, fmt.Errorf("horizon must not be negative: %d", horizonDays)
	}
	span := dateutil.Range{Start: dateutil.New(1, 1, 1), End: today.AddDays(horizonDays)}
	tasks, err := store.Query(ctx, span)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}

	open := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsOpen() {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool { return open[i].DueDate.Before(open[j].DueDate) })

	return &Snapshot{
		Today:    today,
		Counters: task.CountDeadlines(open, today),
		Tasks:    open,
	}, nil
}

// Assistant answers questions with a Client.
type Assistant struct {
	client Client
}

// NewAssistant creates an Assistant.
func NewAssistant(client Client) *Assistant {
	return &Assistant{client: client}
}

// Ask sends question with the snapshot as context and returns the answer.
func (a *Assistant) Ask(ctx context.Context, question string, snap *Snapshot) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("question is empty")
	}
	if snap == nil {
		snap = &Snapshot{}
	}

	messages := []Message{
		{Role: RoleSystem, Content: systemPrompt + "\n\n" + FormatSnapshot(snap)},
		{Role: RoleUser, Content: question},
	}
	answer, err := a.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// FormatSnapshot renders the snapshot as the plain text block given to the
// model.
func FormatSnapshot(snap *Snapshot) string {
	var b strings.Builder
	c := snap.Counters
	fmt.Fprintf(&b, "Today: %s (%s)\n", snap.Today.FormatItalian(), snap.Today.Weekday())
	fmt.Fprintf(&b, "Counters: overdue %d, today %d, tomorrow %d, next 7 days %d\n",
		c.Overdue, c.Today, c.Tomorrow, c.ThisWeek)

	if len(snap.Tasks) == 0 {
		b.WriteString("Deadlines: none\n")
		return b.String()
	}

	b.WriteString("Deadlines:\n")
	for i, t := range snap.Tasks {
		if i == maxContextTasks {
			fmt.Fprintf(&b, "... %d more not listed\n", len(snap.Tasks)-maxContextTasks)
			break
		}
		b.WriteString(formatTaskLine(t, snap.Today))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatTaskLine(t *task.Task, today dateutil.Date) string {
	parts := []string{fmt.Sprintf("- %s %s", t.DueDate.FormatItalian(), t.Title)}
	if days := today.DaysUntil(t.DueDate); days < 0 {
		parts = append(parts, fmt.Sprintf("overdue by %d days", -days))
	}
	for _, f := range []struct{ label, value string }{
		{"practice", t.Practice},
		{"client", t.Client},
		{"counterparty", t.Counterparty},
		{"category", t.Category},
		{"priority", string(t.Priority)},
	} {
		if f.value != "" {
			parts = append(parts, f.label+": "+f.value)
		}
	}
	return strings.Join(parts, "; ")
}
