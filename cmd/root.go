// Package cmd implements the CLI command structure for taskman.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/config"
	"github.com/nibzard/taskman/internal/logging"
	"github.com/nibzard/taskman/internal/menu"
	"github.com/nibzard/taskman/internal/todo"
	"github.com/nibzard/taskman/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the taskman CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskman", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No args, or a leading flag, selects the menu.
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// menuCommand runs the numbered text menu on stdin and stdout.
func menuCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman menu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	mgr := todo.NewManager()
	m := menu.New(mgr, stdin, stdout,
		menu.WithLogger(logger),
		menu.WithDateLayout(cfg.DateFormat),
		menu.WithRenderOptions(renderOptions(cfg)),
		menu.WithStartupInfo(cfg.StorageURL, logDestination(cfg)),
	)
	logger.Info("session started", "mode", "menu", "config", cfg.File)
	err = m.Run(ctx)
	logger.Info("session ended", "mode", "menu", "tasks", mgr.Len())
	return err
}

// tuiCommand launches the terminal board.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	mgr := todo.NewManager()
	logger.Info("session started", "mode", "tui", "config", cfg.File)
	err = ui.RunTUI(ctx, mgr,
		ui.WithLogger(logger),
		ui.WithRenderOptions(renderOptions(cfg)),
	)
	logger.Info("session ended", "mode", "tui", "tasks", mgr.Len())
	return err
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error", "fatal"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// doctorCommand checks the effective configuration and log destination.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	fmt.Fprintln(stdout, "Taskman Doctor")
	fmt.Fprintln(stdout, "==============")
	fmt.Fprintln(stdout)

	allOK := true

	// Check project root
	fmt.Fprintf(stdout, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	// Check config file
	fmt.Fprintln(stdout, "Config file:")
	if cfg.File == "" {
		fmt.Fprintln(stdout, "  ✅ None found (using defaults)")
	} else {
		result := config.ValidateFile(cfg.File)
		if result.Valid {
			fmt.Fprintf(stdout, "  ✅ %s\n", cfg.File)
		} else {
			fmt.Fprintf(stdout, "  ❌ %s\n", cfg.File)
			for _, err := range result.Errors {
				fmt.Fprintf(stdout, "     - %v\n", err)
			}
			allOK = false
		}
	}
	fmt.Fprintln(stdout)

	// Check effective values, which may come from env or flags.
	fmt.Fprintln(stdout, "Settings:")
	if slices.Contains(validLogLevels, cfg.LogLevel) {
		fmt.Fprintf(stdout, "  ✅ Log level: %s\n", cfg.LogLevel)
	} else {
		fmt.Fprintf(stdout, "  ❌ Log level: %s (expected %s)\n", cfg.LogLevel, strings.Join(validLogLevels, "|"))
		allOK = false
	}
	if slices.Contains(validLogFormats, cfg.LogFormat) {
		fmt.Fprintf(stdout, "  ✅ Log format: %s\n", cfg.LogFormat)
	} else {
		fmt.Fprintf(stdout, "  ❌ Log format: %s (expected %s)\n", cfg.LogFormat, strings.Join(validLogFormats, "|"))
		allOK = false
	}
	if sample, ok := checkDateLayout(cfg.DateFormat); ok {
		fmt.Fprintf(stdout, "  ✅ Date format: %s (e.g. %s)\n", cfg.DateFormat, sample)
	} else {
		fmt.Fprintf(stdout, "  ❌ Date format: %q does not round-trip a date\n", cfg.DateFormat)
		allOK = false
	}
	fmt.Fprintf(stdout, "  ✅ Flag completed overdue: %t\n", cfg.FlagCompletedOverdue)
	fmt.Fprintln(stdout)

	// Check log destination
	fmt.Fprintln(stdout, "Log file:")
	if cfg.LogFile == "" {
		fmt.Fprintln(stdout, "  ✅ stderr")
	} else if err := checkLogDir(cfg.LogFile); err != nil {
		fmt.Fprintf(stdout, "  ❌ %s: %v\n", cfg.LogFile, err)
		allOK = false
	} else {
		fmt.Fprintf(stdout, "  ✅ %s\n", cfg.LogFile)
	}
	fmt.Fprintln(stdout)

	// Storage is a placeholder; only the URL shape is checked.
	fmt.Fprintln(stdout, "Storage:")
	if u, err := url.Parse(cfg.StorageURL); err != nil || u.Scheme == "" {
		fmt.Fprintf(stdout, "  ❌ %q is not a URL with a scheme\n", cfg.StorageURL)
		allOK = false
	} else {
		fmt.Fprintf(stdout, "  ✅ %s (placeholder, tasks are kept in memory)\n", cfg.StorageURL)
	}
	if cfg.APIKey != "" {
		fmt.Fprintf(stdout, "  ✅ API key: %s\n", cfg.RedactedAPIKey())
	}
	fmt.Fprintln(stdout)

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed. Taskman may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// configCommand prints the effective configuration or an example file.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	if *example {
		_, err := io.WriteString(stdout, config.ExampleConfig())
		return err
	}
	if cfg.File != "" {
		fmt.Fprintf(stdout, "# loaded from %s\n", cfg.File)
	} else {
		fmt.Fprintln(stdout, "# no config file found, showing defaults")
	}
	return cfg.Encode(stdout)
}

// tailCommand prints the application log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.LogFile == "" {
		fmt.Fprintln(stdout, "Logging to stderr; no log file to tail.")
		return nil
	}
	if _, err := os.Stat(cfg.LogFile); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stdout, "No log file found at %s.\n", cfg.LogFile)
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", cfg.LogFile)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	err := logging.TailLog(ctx, stdout, cfg.LogFile, *n, *follow)
	if *follow && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "taskman version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskman - A personal to-do manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskman [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu          Interactive numbered menu (default command)")
	fmt.Fprintln(w, "  tui           Launch terminal board")
	fmt.Fprintln(w, "  doctor        Check config file, settings, and log destination")
	fmt.Fprintln(w, "  config        Print the effective configuration")
	fmt.Fprintln(w, "  tail          Print the application log")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}

func newLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	opts := logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	logger, closer, err := logging.Setup(cfg.LogFile, stderr, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logger, closer, nil
}

func renderOptions(cfg *config.Config) todo.RenderOptions {
	opts := todo.DefaultRenderOptions()
	opts.FlagCompletedOverdue = cfg.FlagCompletedOverdue
	return opts
}

func logDestination(cfg *config.Config) string {
	if cfg.LogFile == "" {
		return "stderr"
	}
	return cfg.LogFile
}

// checkDateLayout formats a reference date with layout and parses it back.
func checkDateLayout(layout string) (string, bool) {
	ref := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	sample := ref.Format(layout)
	if sample == layout {
		return "", false
	}
	parsed, err := time.Parse(layout, sample)
	if err != nil || !parsed.Equal(ref) {
		return "", false
	}
	return sample, true
}

// checkLogDir reports whether the log file's directory exists or can be
// created, without creating it.
func checkLogDir(path string) error {
	dir := filepath.Dir(path)
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return err
		}
		dir = parent
	}
}
