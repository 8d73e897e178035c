package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/tasklist-go/internal/todo"
)

const emptyMessage = "No tasks yet."

// pluralize returns "1 task" or "n tasks".
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// StatsLine formats the pending/completed/total counters.
func StatsLine(s todo.Stats) string {
	return fmt.Sprintf("%s pending | %s completed | Total: %d",
		pluralize(s.Pending, "task", "tasks"),
		pluralize(s.Completed, "task", "tasks"),
		s.Total,
	)
}

func checkbox(t todo.TaskView) string {
	switch {
	case t.IsEditing:
		return "[~]"
	case t.Completed:
		return "[x]"
	default:
		return "[ ]"
	}
}

// RenderText draws the whole view as plain text.
func RenderText(view todo.ViewModel) string {
	var b strings.Builder
	writeTitle(&b, PlainStyles())

	if view.IsEmpty {
		b.WriteString(emptyMessage + "\n")
		return b.String()
	}

	for _, t := range view.Tasks {
		line := fmt.Sprintf("%s %s", checkbox(t), t.Text)
		if t.IsEditing {
			line += " (editing)"
		}
		b.WriteString(line + "\n")
		b.WriteString(fmt.Sprintf("    created %s\n", t.CreatedAt))
	}
	b.WriteString("\n" + StatsLine(view.Stats) + "\n")
	return b.String()
}

func writeTitle(b *strings.Builder, st Styles) {
	title := "Tasks"
	b.WriteString(st.Title.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}
