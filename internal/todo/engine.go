package todo

import (
	"time"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for ids and creation dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMaxTextLength sets the maximum task text length in runes.
// Values <= 0 keep the default.
func WithMaxTextLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxText = n
		}
	}
}

// WithDateLayout sets the time layout used for CreatedAt.
func WithDateLayout(layout string) Option {
	return func(e *Engine) {
		if layout != "" {
			e.dateLayout = layout
		}
	}
}

// Engine owns the task list and the edit slot.
// It is not safe for concurrent use; one goroutine should own it.
type Engine struct {
	tasks      []Task
	editingID  *int64
	lastID     int64
	now        func() time.Time
	maxText    int
	dateLayout string
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:        time.Now,
		maxText:    DefaultMaxTextLength,
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxTextLength returns the configured text limit in runes.
func (e *Engine) MaxTextLength() int {
	return e.maxText
}

// Add appends a new task built from raw. It returns false and leaves the list
// untouched when the trimmed text is empty or too long.
func (e *Engine) Add(raw string) (Task, bool) {
	text, ok := NormalizeText(raw, e.maxText)
	if !ok {
		return Task{}, false
	}

	now := e.now()
	task := Task{
		ID:        e.nextID(now),
		Text:      text,
		Completed: false,
		CreatedAt: now.Format(e.dateLayout),
	}
	e.tasks = append(e.tasks, task)
	return task, true
}

// nextID derives an id from the clock, bumping past the last issued id when
// the clock has not advanced.
func (e *Engine) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return id
}

// Remove deletes the task with id. Missing ids are ignored.
func (e *Engine) Remove(id int64) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
	if e.editingID != nil && *e.editingID == id {
		e.editingID = nil
	}
	return true
}

// Toggle flips the completion state of the task with id.
func (e *Engine) Toggle(id int64) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.tasks[i].Completed = !e.tasks[i].Completed
	return true
}

// BeginEdit puts id into edit mode. The id is not checked against the list.
func (e *Engine) BeginEdit(id int64) {
	e.editingID = &id
}

// SaveEdit replaces the text of the task with id when text is valid, and
// leaves edit mode either way. It reports whether the text was updated.
func (e *Engine) SaveEdit(id int64, text string) bool {
	defer e.CancelEdit()

	normalized, ok := NormalizeText(text, e.maxText)
	if !ok {
		return false
	}
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.tasks[i].Text = normalized
	return true
}

// CancelEdit leaves edit mode without touching any task.
func (e *Engine) CancelEdit() {
	e.editingID = nil
}

// EditingID returns the id in edit mode, if any.
func (e *Engine) EditingID() (int64, bool) {
	if e.editingID == nil {
		return 0, false
	}
	return *e.editingID, true
}

// Stats counts pending and completed tasks.
func (e *Engine) Stats() Stats {
	s := Stats{Total: len(e.tasks)}
	for _, t := range e.tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	return s
}

// View builds a snapshot of the list for rendering.
func (e *Engine) View() ViewModel {
	stats := e.Stats()
	vm := ViewModel{
		Tasks:   make([]TaskView, 0, len(e.tasks)),
		Stats:   stats,
		IsEmpty: stats.Total == 0,
	}
	editing, hasEditing := e.EditingID()
	for _, t := range e.tasks {
		vm.Tasks = append(vm.Tasks, TaskView{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
			IsEditing: hasEditing && t.ID == editing,
		})
	}
	return vm
}

// Tasks returns a copy of the list in display order.
func (e *Engine) Tasks() []Task {
	out := make([]Task, len(e.tasks))
	copy(out, e.tasks)
	return out
}

// Task returns the task with id, if present.
func (e *Engine) Task(id int64) (Task, bool) {
	i := e.index(id)
	if i < 0 {
		return Task{}, false
	}
	return e.tasks[i], true
}

// Len returns the number of tasks.
func (e *Engine) Len() int {
	return len(e.tasks)
}

func (e *Engine) index(id int64) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
