// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/script"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// No args or a leading flag means the interactive UI.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs, stderr)
	case "replay":
		return replayCommand(cfg, remainingArgs, stdout, stderr)
	case "config":
		return configCommand(cws, remainingArgs, stdout)
	case "logs":
		return logsCommand(ctx, cfg, remainingArgs, stdout)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newEngine builds an engine honoring the configured limits.
func newEngine(cfg *config.Config) *todo.Engine {
	return todo.New(
		todo.WithMaxTextLength(cfg.MaxTextLength),
		todo.WithDateLayout(cfg.DateFormat),
	)
}

// openSession starts the session log. A failure is reported on stderr and
// logging continues into a discarded logger.
func openSession(cfg *config.Config, stderr io.Writer) (*logging.Session, *log.Logger) {
	opts := logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	session, err := logging.NewSession(cfg.LogDir, cfg.ProjectRoot, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: session log disabled: %v\n", err)
		return nil, logging.Discard()
	}
	return session, session.Logger
}

// tuiCommand launches the interactive editor.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noColor := fs.Bool("no-color", false, "Disable colors")
	inline := fs.Bool("inline", false, "Draw inline instead of using the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	session, logger := openSession(cfg, stderr)
	defer session.Close()

	logger.Info("starting tui", "max_text_length", cfg.MaxTextLength, "date_format", cfg.DateFormat)
	opts := []ui.TUIOption{ui.WithAltScreen(!*inline)}
	if *noColor {
		opts = append(opts, ui.WithStyles(ui.PlainStyles()))
	}

	d := ui.NewDispatcher(newEngine(cfg), logger)
	err := ui.RunTUI(ctx, d, opts...)
	stats := d.View().Stats
	logger.Info("tui exited", "pending", stats.Pending, "completed", stats.Completed, "total", stats.Total)
	return err
}

// replayCommand applies a script to a fresh engine and exports the result.
func replayCommand(cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tasklist replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "Output format ("+strings.Join(ui.ExportFormats(), "|")+")")
	out := fs.String("out", "", "Write output to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("replay requires a script path")
	}
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if *format == "pdf" && *out == "" && ui.IsTTY(stdout) {
		return fmt.Errorf("pdf output requires --out when stdout is a terminal")
	}

	s, err := script.Load(remaining[0])
	if err != nil {
		return err
	}

	session, logger := openSession(cfg, stderr)
	defer session.Close()
	logger.Info("replaying script", "path", remaining[0], "steps", len(s.Steps))

	engine := newEngine(cfg)
	if err := s.Replay(engine, ui.NewDispatcher(engine, logger)); err != nil {
		return fmt.Errorf("replaying %s: %w", remaining[0], err)
	}

	data, err := ui.Export(engine.View(), *format)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	logger.Info("wrote export", "path", *out, "format", *format, "bytes", len(data))
	return nil
}

// configCommand prints the effective configuration.
func configCommand(cws *config.ConfigWithSources, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tasklist config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	showSources := fs.Bool("sources", false, "Show where each value came from")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	if err := cws.Config.WriteTOML(stdout); err != nil {
		return err
	}
	if !*showSources {
		return nil
	}

	fmt.Fprintln(stdout)
	if len(cws.Files) > 0 {
		fmt.Fprintf(stdout, "# files: %s\n", strings.Join(cws.Files, ", "))
	}
	keys := make([]string, 0, len(cws.Sources))
	for k := range cws.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "# %s: %s\n", k, cws.Sources[k])
	}
	return nil
}

// logsCommand prints the latest session log.
func logsCommand(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tasklist logs", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Log: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasklist version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - a terminal to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui             Interactive list editor (default command)")
	fmt.Fprintln(w, "  replay <file>   Apply a JSON or YAML command script and print the result")
	fmt.Fprintln(w, "  config          Print the effective configuration")
	fmt.Fprintln(w, "  logs            Print the latest session log")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options:")
	fmt.Fprintln(w, "  -no-color")
	fmt.Fprintln(w, "        Disable colors")
	fmt.Fprintln(w, "  -inline")
	fmt.Fprintln(w, "        Draw inline instead of using the alternate screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replay Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintf(w, "        Output format (%s) (default \"text\")\n", strings.Join(ui.ExportFormats(), "|"))
	fmt.Fprintln(w, "  -out string")
	fmt.Fprintln(w, "        Write output to this file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w, "  -sources")
	fmt.Fprintln(w, "        Show where each value came from")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
