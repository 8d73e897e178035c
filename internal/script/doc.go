// Package script loads and replays recorded task list sessions.
//
// A script is a JSON or YAML document listing the commands a user issued:
//
//	version: 1
//	steps:
//	  - op: add
//	    text: Buy milk
//	  - op: toggle
//	    index: 1
//	  - op: begin_edit
//	    index: 1
//	  - op: save_edit
//	    index: 1
//	    text: Buy oat milk
//
// Tasks are addressed by their 1-based position in the list at the moment the
// step runs, because ids are derived from the clock and cannot be known in
// advance. A position outside the list addresses no task, so the step turns
// into the engine's usual no-op.
//
// # Validation
//
// Every document is checked against an embedded JSON Schema (draft 2020-12)
// before it is decoded:
//   - version must be 1
//   - op must be one of add, remove, toggle, begin_edit, save_edit, cancel_edit
//   - add and save_edit require text
//   - remove, toggle, begin_edit and save_edit require index (>= 1)
//   - unknown keys are rejected
package script
