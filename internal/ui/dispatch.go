package ui

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// Dispatcher routes commands to one engine and logs each of them.
// Like the engine it wraps, it must be used from a single goroutine.
type Dispatcher struct {
	engine *todo.Engine
	logger *log.Logger
}

// NewDispatcher wraps engine. A nil logger discards output.
func NewDispatcher(engine *todo.Engine, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Dispatcher{engine: engine, logger: logger}
}

// Apply runs cmd and logs the outcome.
func (d *Dispatcher) Apply(cmd todo.Command) (bool, error) {
	changed, err := d.engine.Apply(cmd)
	if err != nil {
		d.logger.Error("command failed", "op", cmd.Kind, "id", cmd.ID, "err", err)
		return false, err
	}

	stats := d.engine.Stats()
	fields := []any{
		"op", cmd.Kind,
		"changed", changed,
		"pending", stats.Pending,
		"completed", stats.Completed,
		"total", stats.Total,
	}
	if cmd.ID != 0 {
		fields = append(fields, "id", cmd.ID)
	}
	if cmd.Kind == todo.CommandAdd || cmd.Kind == todo.CommandSaveEdit {
		fields = append(fields, "text_len", len([]rune(cmd.Text)))
	}
	if changed {
		d.logger.Debug("applied command", fields...)
	} else {
		d.logger.Debug("ignored command", fields...)
	}
	return changed, nil
}

// View returns a fresh view model of the wrapped engine.
func (d *Dispatcher) View() todo.ViewModel {
	return d.engine.View()
}

// Engine returns the wrapped engine.
func (d *Dispatcher) Engine() *todo.Engine {
	return d.engine
}
