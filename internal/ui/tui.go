// Package ui renders the task list and routes terminal input to it.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	altScreen bool
	styles    Styles
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// WithStyles overrides the color scheme.
func WithStyles(st Styles) TUIOption {
	return func(c *tuiConfig) {
		c.styles = st
	}
}

// RunTUI starts the interactive editor over d's engine and blocks until the
// user quits or ctx is done.
func RunTUI(ctx context.Context, d *Dispatcher, opts ...TUIOption) error {
	c := &tuiConfig{
		altScreen: true,
		styles:    DefaultStyles(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(newTUIModel(d, c.styles), programOpts...)
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
)

type tuiModel struct {
	dispatcher *Dispatcher
	styles     Styles
	view       todo.ViewModel
	cursor     int
	mode       inputMode
	draft      []rune // new task text
	edit       []rune // text of the row being edited
	showHelp   bool
	err        error
}

func newTUIModel(d *Dispatcher, st Styles) *tuiModel {
	m := &tuiModel{
		dispatcher: d,
		styles:     st,
	}
	m.refresh()
	if m.view.IsEmpty {
		m.mode = modeAdd
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.showHelp {
		return m.updateHelp(key)
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(key)
	case modeEdit:
		return m.updateEdit(key)
	default:
		return m.updateBrowse(key)
	}
}

func (m *tuiModel) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "a", "i", "n", "tab":
		m.mode = modeAdd
	case " ", "x":
		if row, ok := m.selected(); ok {
			m.apply(todo.ToggleCommand(row.ID))
		}
	case "e", "enter":
		if row, ok := m.selected(); ok {
			m.apply(todo.BeginEditCommand(row.ID))
			m.edit = []rune(row.Text)
			m.mode = modeEdit
		}
	case "d", "delete", "backspace":
		if row, ok := m.selected(); ok {
			m.apply(todo.RemoveCommand(row.ID))
		}
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// updateHelp handles keys while the help screen hides the list. Only keys
// that leave the screen or quit are honored.
func (m *tuiModel) updateHelp(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "h", "?", "esc":
		m.showHelp = false
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *tuiModel) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		if m.canAdd() {
			m.apply(todo.AddCommand(string(m.draft)))
			m.draft = nil
			m.cursor = len(m.view.Tasks) - 1
		}
	case tea.KeyEsc, tea.KeyTab:
		m.mode = modeBrowse
	case tea.KeyBackspace:
		m.draft = dropLast(m.draft)
	case tea.KeyRunes, tea.KeySpace:
		m.draft = m.appendCapped(m.draft, key.Runes)
	}
	return m, nil
}

func (m *tuiModel) updateEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, editing := m.view.Editing()
	if !editing {
		m.mode = modeBrowse
		return m.updateBrowse(key)
	}

	switch key.Type {
	case tea.KeyEnter:
		m.saveEdit(row.ID)
	case tea.KeyEsc:
		m.apply(todo.CancelEditCommand())
		m.leaveEdit()
	case tea.KeyUp, tea.KeyDown:
		// Moving away from the row saves it, like losing focus.
		m.saveEdit(row.ID)
		if key.Type == tea.KeyUp {
			m.moveCursor(-1)
		} else {
			m.moveCursor(1)
		}
	case tea.KeyBackspace:
		m.edit = dropLast(m.edit)
	case tea.KeyRunes, tea.KeySpace:
		m.edit = m.appendCapped(m.edit, key.Runes)
	}
	return m, nil
}

func (m *tuiModel) saveEdit(id int64) {
	m.apply(todo.SaveEditCommand(id, string(m.edit)))
	m.leaveEdit()
}

func (m *tuiModel) leaveEdit() {
	m.edit = nil
	m.mode = modeBrowse
}

// apply dispatches cmd and re-reads the whole view.
func (m *tuiModel) apply(cmd todo.Command) {
	if _, err := m.dispatcher.Apply(cmd); err != nil {
		m.err = err
	}
	m.refresh()
}

func (m *tuiModel) refresh() {
	m.view = m.dispatcher.View()
	if m.cursor >= len(m.view.Tasks) {
		m.cursor = len(m.view.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) moveCursor(delta int) {
	if len(m.view.Tasks) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.view.Tasks) {
		m.cursor = len(m.view.Tasks) - 1
	}
}

func (m *tuiModel) selected() (todo.TaskView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Tasks) {
		return todo.TaskView{}, false
	}
	return m.view.Tasks[m.cursor], true
}

func (m *tuiModel) canAdd() bool {
	_, ok := todo.NormalizeText(string(m.draft), m.dispatcher.Engine().MaxTextLength())
	return ok
}

// appendCapped appends runes to buf without exceeding the text limit.
func (m *tuiModel) appendCapped(buf, runes []rune) []rune {
	max := m.dispatcher.Engine().MaxTextLength()
	for _, r := range runes {
		if max > 0 && len(buf) >= max {
			break
		}
		buf = append(buf, r)
	}
	return buf
}

func dropLast(buf []rune) []rune {
	if len(buf) == 0 {
		return buf
	}
	return buf[:len(buf)-1]
}

func (m *tuiModel) View() string {
	var b strings.Builder
	st := m.styles
	writeTitle(&b, st)

	if m.showHelp {
		writeHelp(&b, st)
		return b.String()
	}

	m.writeAddLine(&b)

	if m.view.IsEmpty {
		b.WriteString(st.Empty.Render(emptyMessage+" Type a task and press enter.") + "\n\n")
	} else {
		for i, row := range m.view.Tasks {
			m.writeRow(&b, i, row)
		}
		b.WriteString("\n" + st.Counter.Render(StatsLine(m.view.Stats)) + "\n\n")
	}

	if m.err != nil {
		b.WriteString(st.ErrorLine.Render("Error: "+m.err.Error()) + "\n\n")
	}
	writeFooter(&b, st, m.mode)
	return b.String()
}

func (m *tuiModel) writeAddLine(b *strings.Builder) {
	st := m.styles
	prompt := "Add task: "
	text := string(m.draft)
	if m.mode == modeAdd {
		text += "_"
	}
	if !m.canAdd() {
		b.WriteString(st.Disabled.Render(prompt) + text + "\n\n")
		return
	}
	b.WriteString(st.Prompt.Render(prompt) + text + "\n\n")
}

func (m *tuiModel) writeRow(b *strings.Builder, i int, row todo.TaskView) {
	st := m.styles
	pointer := "  "
	if i == m.cursor && m.mode != modeAdd {
		pointer = st.Cursor.Render(">") + " "
	}

	if row.IsEditing {
		fmt.Fprintf(b, "%s%s %s\n", pointer, checkbox(row), st.Editing.Render(string(m.edit)+"_"))
		b.WriteString("      " + st.Help.Render("enter save | esc cancel") + "\n")
		return
	}

	text := row.Text
	if row.Completed {
		text = st.Done.Render(text)
	}
	fmt.Fprintf(b, "%s%s %s\n", pointer, checkbox(row), text)
	b.WriteString("      " + st.Date.Render("created "+row.CreatedAt) + "\n")
}

func writeHelp(b *strings.Builder, st Styles) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  a, i, n, tab   Type a new task (enter adds, esc returns to the list)\n")
	b.WriteString("  up/k, down/j   Move selection\n")
	b.WriteString("  space, x       Toggle completed\n")
	b.WriteString("  e, enter       Edit (enter saves, esc cancels)\n")
	b.WriteString("  d, delete      Remove\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
	b.WriteString(st.Help.Render("Press h or esc to go back") + "\n")
}

func writeFooter(b *strings.Builder, st Styles, mode inputMode) {
	var hint string
	switch mode {
	case modeAdd:
		hint = "enter add | esc list | ctrl+c quit"
	case modeEdit:
		hint = "enter save | esc cancel | ctrl+c quit"
	default:
		hint = "a add | space toggle | e edit | d remove | h help | q quit"
	}
	b.WriteString(st.Help.Render(hint) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
