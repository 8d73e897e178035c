// Package todo holds the in-memory task list and its edit state.
//
// An Engine owns an ordered list of tasks and a single editing slot. Every
// operation is synchronous and total: ids that do not match a task are
// ignored, and invalid text never produces an error.
//
//	e := todo.New()
//	task, _ := e.Add("Buy milk")
//	e.Toggle(task.ID)
//	view := e.View()
//
// # Task Text
//
// Text is trimmed before use. A trimmed value must be non-empty and at most
// the engine's limit (DefaultMaxTextLength runes unless configured):
//
//   - Add ignores invalid text.
//   - SaveEdit ignores invalid text but still leaves edit mode.
//
// # Edit Mode
//
// At most one task is edited at a time. The editing id lives on the engine,
// not on the task, and may point at a task that no longer exists; the view
// then simply marks no row as editing.
//
// # Commands
//
// Adapters translate input into Command values and hand them to Apply. The
// engine never calls back; callers re-read View and Stats after each command.
package todo
