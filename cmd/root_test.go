// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tasklist-go/internal/todo"
)

const replayScript = `version: 1
steps:
  - op: add
    text: Buy milk
  - op: add
    text: Walk the dog
  - op: toggle
    index: 1
`

// isolate points HOME and the working directory at temp dirs so no real
// config files or TASKLIST_* variables leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{
		"TASKLIST_MAX_TEXT_LENGTH",
		"TASKLIST_DATE_FORMAT",
		"TASKLIST_LOG_DIR",
		"TASKLIST_LOG_LEVEL",
		"TASKLIST_LOG_FORMAT",
		"TASKLIST_LOG_TIMESTAMPS",
		"TASKLIST_LOG_CALLER",
	} {
		t.Setenv(env, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return work
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// TestRun tests top-level dispatch.
func TestRun(t *testing.T) {
	isolate(t)

	t.Run("shows help with --help flag", func(t *testing.T) {
		out, _, err := runCLI(t, "--help")
		require.NoError(t, err)
		assert.Contains(t, out, "replay <file>")
	})

	t.Run("shows help with help command", func(t *testing.T) {
		_, _, err := runCLI(t, "help")
		assert.NoError(t, err)
	})

	t.Run("shows version with -v flag", func(t *testing.T) {
		out, _, err := runCLI(t, "-v")
		require.NoError(t, err)
		assert.Equal(t, "tasklist version "+Version+"\n", out)
	})

	t.Run("version command", func(t *testing.T) {
		out, _, err := runCLI(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "tasklist version")
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, stderr, err := runCLI(t, "unknown-command")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
		assert.Contains(t, stderr, "Unknown command: unknown-command")
	})

	t.Run("invalid log format fails config loading", func(t *testing.T) {
		_, _, err := runCLI(t, "--log-format", "xml", "version")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
	})
}

func TestReplayCommand(t *testing.T) {
	work := isolate(t)
	logDir := filepath.Join(work, "logs")
	path := writeScript(t, work, "session.yaml", replayScript)

	t.Run("text to stdout", func(t *testing.T) {
		out, _, err := runCLI(t, "--log-dir", logDir, "replay", path)
		require.NoError(t, err)
		assert.Contains(t, out, "[x] Buy milk")
		assert.Contains(t, out, "[ ] Walk the dog")
		assert.Contains(t, out, "1 task pending | 1 task completed | Total: 2")
	})

	t.Run("json to file", func(t *testing.T) {
		outPath := filepath.Join(work, "out.json")
		_, _, err := runCLI(t, "--log-dir", logDir, "replay", "--format", "json", "--out", outPath, path)
		require.NoError(t, err)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		var view todo.ViewModel
		require.NoError(t, json.Unmarshal(data, &view))
		assert.Equal(t, todo.Stats{Pending: 1, Completed: 1, Total: 2}, view.Stats)
	})

	t.Run("max text length flag applies", func(t *testing.T) {
		out, _, err := runCLI(t, "--log-dir", logDir, "--max-text-length", "8", "replay", path)
		require.NoError(t, err)
		assert.NotContains(t, out, "Walk the dog", "over-long task was added")
		assert.Contains(t, out, "Total: 1")
	})

	t.Run("missing script path", func(t *testing.T) {
		_, _, err := runCLI(t, "--log-dir", logDir, "replay")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a script")
	})

	t.Run("invalid script", func(t *testing.T) {
		bad := writeScript(t, work, "bad.json", `{"version": 1, "steps": [{"op": "explode"}]}`)
		_, _, err := runCLI(t, "--log-dir", logDir, "replay", bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid script")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := runCLI(t, "--log-dir", logDir, "replay", "--format", "xml", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("logs shows the latest session", func(t *testing.T) {
		out, _, err := runCLI(t, "--log-dir", logDir, "logs")
		require.NoError(t, err)
		assert.Contains(t, out, "replaying script")
	})
}

func TestLogsCommandWithoutLogs(t *testing.T) {
	work := isolate(t)
	out, _, err := runCLI(t, "--log-dir", filepath.Join(work, "empty"), "logs")
	require.NoError(t, err)
	assert.Contains(t, out, "No log files found.")
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	t.Run("prints effective config", func(t *testing.T) {
		out, _, err := runCLI(t, "--max-text-length", "50", "config", "-sources")
		require.NoError(t, err)
		assert.Contains(t, out, "max_text_length = 50")
		assert.Contains(t, out, `date_format = "02/01/2006"`)
		assert.Contains(t, out, "# max_text_length: flag")
		assert.Contains(t, out, "# log_level: default")
	})

	t.Run("prints example", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "-example")
		require.NoError(t, err)
		assert.Regexp(t, `^# tasklist configuration file`, out)
	})
}
