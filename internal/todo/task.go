package todo

import (
	"strings"
	"unicode/utf8"
)

// Default values.
const (
	DefaultMaxTextLength = 200
	DefaultDateLayout    = "02/01/2006"
)

// Task represents a single item in the list.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// Stats counts tasks by completion state.
type Stats struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// TaskView describes how one task should be rendered.
type TaskView struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	IsEditing bool   `json:"is_editing"`
}

// ViewModel is a read-only snapshot of everything a renderer needs.
type ViewModel struct {
	Tasks   []TaskView `json:"tasks"`
	Stats   Stats      `json:"stats"`
	IsEmpty bool       `json:"is_empty"`
}

// Editing returns the row in edit mode, if any.
func (v ViewModel) Editing() (TaskView, bool) {
	for _, t := range v.Tasks {
		if t.IsEditing {
			return t, true
		}
	}
	return TaskView{}, false
}

// NormalizeText trims raw and reports whether the result is usable as task
// text: non-empty and no longer than max runes. A max <= 0 disables the
// length check.
func NormalizeText(raw string, max int) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if max > 0 && utf8.RuneCountInString(text) > max {
		return text, false
	}
	return text, true
}
