package todo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned by Apply for a command kind it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind names an engine operation.
type CommandKind string

const (
	CommandAdd        CommandKind = "add"
	CommandRemove     CommandKind = "remove"
	CommandToggle     CommandKind = "toggle"
	CommandBeginEdit  CommandKind = "begin_edit"
	CommandSaveEdit   CommandKind = "save_edit"
	CommandCancelEdit CommandKind = "cancel_edit"
)

// CommandKinds lists every kind Apply accepts.
func CommandKinds() []CommandKind {
	return []CommandKind{
		CommandAdd,
		CommandRemove,
		CommandToggle,
		CommandBeginEdit,
		CommandSaveEdit,
		CommandCancelEdit,
	}
}

// ParseCommandKind maps a name to a CommandKind. Hyphenated and camelCase
// spellings are accepted ("begin-edit", "beginEdit").
func ParseCommandKind(name string) (CommandKind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	switch key {
	case "add":
		return CommandAdd, nil
	case "remove", "delete":
		return CommandRemove, nil
	case "toggle":
		return CommandToggle, nil
	case "begin_edit", "beginedit", "edit":
		return CommandBeginEdit, nil
	case "save_edit", "saveedit", "save":
		return CommandSaveEdit, nil
	case "cancel_edit", "canceledit", "cancel":
		return CommandCancelEdit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Command is a single user intent routed from an adapter to the engine.
// ID is ignored by add and cancel_edit; Text is used by add and save_edit.
type Command struct {
	Kind CommandKind `json:"op"`
	ID   int64       `json:"id,omitempty"`
	Text string      `json:"text,omitempty"`
}

// AddCommand builds an add command.
func AddCommand(text string) Command { return Command{Kind: CommandAdd, Text: text} }

// RemoveCommand builds a remove command.
func RemoveCommand(id int64) Command { return Command{Kind: CommandRemove, ID: id} }

// ToggleCommand builds a toggle command.
func ToggleCommand(id int64) Command { return Command{Kind: CommandToggle, ID: id} }

// BeginEditCommand builds a begin_edit command.
func BeginEditCommand(id int64) Command { return Command{Kind: CommandBeginEdit, ID: id} }

// SaveEditCommand builds a save_edit command.
func SaveEditCommand(id int64, text string) Command {
	return Command{Kind: CommandSaveEdit, ID: id, Text: text}
}

// CancelEditCommand builds a cancel_edit command.
func CancelEditCommand() Command { return Command{Kind: CommandCancelEdit} }

func (c Command) String() string {
	switch c.Kind {
	case CommandAdd:
		return fmt.Sprintf("add %q", c.Text)
	case CommandSaveEdit:
		return fmt.Sprintf("save_edit %d %q", c.ID, c.Text)
	case CommandCancelEdit:
		return string(c.Kind)
	default:
		return fmt.Sprintf("%s %d", c.Kind, c.ID)
	}
}

// Apply runs cmd against the engine and reports whether the task list or the
// edit slot changed. Unknown ids and invalid text are not errors.
func (e *Engine) Apply(cmd Command) (bool, error) {
	switch cmd.Kind {
	case CommandAdd:
		_, ok := e.Add(cmd.Text)
		return ok, nil
	case CommandRemove:
		return e.Remove(cmd.ID), nil
	case CommandToggle:
		return e.Toggle(cmd.ID), nil
	case CommandBeginEdit:
		prev, had := e.EditingID()
		e.BeginEdit(cmd.ID)
		return !had || prev != cmd.ID, nil
	case CommandSaveEdit:
		_, had := e.EditingID()
		updated := e.SaveEdit(cmd.ID, cmd.Text)
		return updated || had, nil
	case CommandCancelEdit:
		_, had := e.EditingID()
		e.CancelEdit()
		return had, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
}
