package ui

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tasklist-go/internal/todo"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func newTestEngine(opts ...todo.Option) *todo.Engine {
	opts = append([]todo.Option{todo.WithClock(func() time.Time { return fixedNow })}, opts...)
	return todo.New(opts...)
}

func sampleView() todo.ViewModel {
	e := newTestEngine()
	a, _ := e.Add("Buy milk")
	e.Add("Walk the dog")
	e.Toggle(a.ID)
	return e.View()
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		stats todo.Stats
		want  string
	}{
		{todo.Stats{}, "0 tasks pending | 0 tasks completed | Total: 0"},
		{todo.Stats{Pending: 1, Completed: 1, Total: 2}, "1 task pending | 1 task completed | Total: 2"},
		{todo.Stats{Pending: 2, Completed: 0, Total: 2}, "2 tasks pending | 0 tasks completed | Total: 2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatsLine(tt.stats))
	}
}

func TestRenderText(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		got := RenderText(newTestEngine().View())
		assert.Contains(t, got, emptyMessage)
		assert.NotContains(t, got, "Total:", "counters shown for empty list")
	})

	t.Run("tasks and counters", func(t *testing.T) {
		got := RenderText(sampleView())
		assert.Contains(t, got, "[x] Buy milk\n    created 05/03/2024\n")
		assert.Contains(t, got, "[ ] Walk the dog\n")
		assert.Contains(t, got, "1 task pending | 1 task completed | Total: 2")
	})

	t.Run("editing marker", func(t *testing.T) {
		e := newTestEngine()
		task, _ := e.Add("Buy milk")
		e.BeginEdit(task.ID)
		assert.Contains(t, RenderText(e.View()), "[~] Buy milk (editing)")
	})
}

func TestExport(t *testing.T) {
	view := sampleView()

	t.Run("json", func(t *testing.T) {
		data, err := Export(view, "json")
		require.NoError(t, err)

		var got todo.ViewModel
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got.Tasks, 2)
		assert.Equal(t, "Buy milk", got.Tasks[0].Text)
		assert.True(t, got.Tasks[0].Completed)
		assert.Equal(t, view.Stats, got.Stats)
	})

	t.Run("csv", func(t *testing.T) {
		data, err := Export(view, "CSV")
		require.NoError(t, err)

		rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"id", "text", "completed", "created_at"}, rows[0])
		assert.Equal(t, []string{"Buy milk", "true", "05/03/2024"}, rows[1][1:])
	})

	t.Run("pdf", func(t *testing.T) {
		data, err := Export(view, "pdf")
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output does not look like a PDF")
	})

	t.Run("default is text", func(t *testing.T) {
		data, err := Export(view, "")
		require.NoError(t, err)
		assert.Equal(t, RenderText(view), string(data))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Export(view, "xml")
		assert.Error(t, err)
	})
}

func TestDispatcherLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	d := NewDispatcher(newTestEngine(), logger)

	changed, err := d.Apply(todo.AddCommand("Buy milk"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, buf.String(), "applied command")
	assert.Contains(t, buf.String(), "op=add")

	buf.Reset()
	changed, err = d.Apply(todo.ToggleCommand(42))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Contains(t, buf.String(), "ignored command")

	buf.Reset()
	_, err = d.Apply(todo.Command{Kind: "explode"})
	require.ErrorIs(t, err, todo.ErrUnknownCommand)
	assert.Contains(t, buf.String(), "command failed")
}

func TestNewDispatcherNilLogger(t *testing.T) {
	d := NewDispatcher(newTestEngine(), nil)
	_, err := d.Apply(todo.AddCommand("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, d.View().Stats.Total)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func press(m *tuiModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func newTestModel(opts ...todo.Option) *tuiModel {
	return newTUIModel(NewDispatcher(newTestEngine(opts...), nil), PlainStyles())
}

func TestTUIAddAndToggle(t *testing.T) {
	m := newTestModel()
	require.Equal(t, modeAdd, m.mode, "empty list should start in add mode")
	assert.Contains(t, m.View(), emptyMessage)

	press(m, runes("Buy milk"), key(tea.KeyEnter))
	require.Equal(t, 1, m.view.Stats.Total)
	assert.Empty(t, m.draft, "draft not cleared")

	press(m, key(tea.KeyEsc), key(tea.KeySpace))
	assert.True(t, m.view.Tasks[0].Completed, "space should toggle the selected task")

	view := m.View()
	assert.Contains(t, view, "[x] Buy milk")
	assert.Contains(t, view, "created 05/03/2024")
	assert.Contains(t, view, "0 tasks pending | 1 task completed | Total: 1")
}

func TestTUIBlankInputIsIgnored(t *testing.T) {
	m := newTestModel()
	press(m, runes("   "), key(tea.KeyEnter))
	assert.Equal(t, 0, m.view.Stats.Total, "blank input added a task")
	assert.False(t, m.canAdd(), "add should be disabled for blank input")
}

func TestTUIInputIsCapped(t *testing.T) {
	m := newTestModel(todo.WithMaxTextLength(5))
	press(m, runes("abcdefgh"))
	assert.Equal(t, "abcde", string(m.draft))

	press(m, key(tea.KeyBackspace))
	assert.Equal(t, "abcd", string(m.draft))
}

func TestTUIEdit(t *testing.T) {
	m := newTestModel()
	press(m, runes("Buy milk"), key(tea.KeyEnter), key(tea.KeyEsc))

	press(m, runes("e"))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "Buy milk", string(m.edit), "edit buffer should be prefilled")
	_, editing := m.dispatcher.Engine().EditingID()
	assert.True(t, editing)

	t.Run("escape cancels", func(t *testing.T) {
		press(m, runes("!!"), key(tea.KeyEsc))
		assert.Equal(t, modeBrowse, m.mode)
		assert.Equal(t, "Buy milk", m.view.Tasks[0].Text)
		_, editing := m.dispatcher.Engine().EditingID()
		assert.False(t, editing)
	})

	t.Run("enter saves trimmed text", func(t *testing.T) {
		press(m, runes("e"))
		for range "milk" {
			press(m, key(tea.KeyBackspace))
		}
		press(m, runes("oats  "), key(tea.KeyEnter))
		assert.Equal(t, "Buy oats", m.view.Tasks[0].Text)
		assert.Equal(t, modeBrowse, m.mode)
	})

	t.Run("empty edit leaves text unchanged", func(t *testing.T) {
		press(m, runes("e"))
		for range m.edit {
			press(m, key(tea.KeyBackspace))
		}
		press(m, key(tea.KeyEnter))
		assert.Equal(t, "Buy oats", m.view.Tasks[0].Text)
		_, editing := m.dispatcher.Engine().EditingID()
		assert.False(t, editing)
	})
}

func TestTUIMovingAwaySavesEdit(t *testing.T) {
	m := newTestModel()
	press(m, runes("A"), key(tea.KeyEnter), runes("B"), key(tea.KeyEnter), key(tea.KeyEsc))
	m.cursor = 0

	press(m, key(tea.KeyEnter), runes("1"), key(tea.KeyDown))
	assert.Equal(t, "A1", m.view.Tasks[0].Text)
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, modeBrowse, m.mode)
}

func TestTUIRemove(t *testing.T) {
	m := newTestModel()
	press(m, runes("A"), key(tea.KeyEnter), runes("B"), key(tea.KeyEnter), key(tea.KeyEsc))
	require.Equal(t, 1, m.cursor, "cursor should be on the last row")

	press(m, runes("d"))
	require.Equal(t, 1, m.view.Stats.Total)
	assert.Equal(t, "A", m.view.Tasks[0].Text)
	assert.Equal(t, 0, m.cursor, "cursor should be clamped")

	press(m, key(tea.KeyDelete))
	assert.True(t, m.view.IsEmpty)
	assert.NotContains(t, m.View(), "Total:", "counters shown for empty list")
}

func TestTUIQuitAndHelp(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(key(tea.KeyCtrlC))
	assert.NotNil(t, cmd, "ctrl+c should quit")

	press(m, key(tea.KeyEsc), runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	press(m, runes("h"))
	assert.False(t, m.showHelp, "h should close help")

	_, cmd = m.Update(runes("q"))
	assert.NotNil(t, cmd, "q should quit from the list")
}

func TestTUIHelpScreenIgnoresListKeys(t *testing.T) {
	m := newTestModel()
	press(m, runes("Buy milk"), key(tea.KeyEnter), key(tea.KeyEsc), runes("?"))
	require.True(t, m.showHelp)

	for _, msg := range []tea.Msg{runes("d"), key(tea.KeyDelete), key(tea.KeySpace), runes("x"), runes("e"), key(tea.KeyEnter), runes("a")} {
		_, cmd := m.Update(msg)
		assert.Nil(t, cmd)
	}
	assert.True(t, m.showHelp, "help should stay open")
	assert.Equal(t, modeBrowse, m.mode)
	require.Equal(t, 1, m.view.Stats.Total, "list keys must not act behind the help screen")
	assert.False(t, m.view.Tasks[0].Completed)
	_, editing := m.dispatcher.Engine().EditingID()
	assert.False(t, editing)

	press(m, key(tea.KeyEsc))
	assert.False(t, m.showHelp, "esc should close help")
	assert.Contains(t, m.View(), "[ ] Buy milk")
}
