// Command intrack is a terminal issue tracker over an append-only
// event log. State is the replay of the log; the UI is a tcell session
// with an external editor for composing issues and comments.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"intrack/app"
	"intrack/config"
	"intrack/core"
	"intrack/logging"
	"intrack/store"
	"intrack/terminal"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		logPath    = pflag.StringP("file", "f", "issues.jsonl", "event log file")
		configPath = pflag.String("config", "", "config file (YAML)")
		debugLog   = pflag.String("log-file", "", "write debug logs to this file")
		verbosity  = pflag.CountP("verbose", "v", "increase log verbosity (repeatable)")
		mouse      = pflag.Bool("mouse", false, "enable mouse capture")
		paste      = pflag.Bool("paste", true, "enable bracketed paste")
	)
	pflag.Parse()

	if err := logging.Setup(*debugLog, *verbosity); err != nil {
		fmt.Fprintln(os.Stderr, "intrack:", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "intrack:", err)
		return 1
	}
	if pflag.CommandLine.Changed("mouse") {
		cfg.Mouse = *mouse
	}
	if pflag.CommandLine.Changed("paste") {
		cfg.Paste = paste
	}

	if err := store.EnsureLog(*logPath); err != nil {
		fmt.Fprintln(os.Stderr, "intrack:", err)
		return 1
	}
	st, err := store.Load(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "intrack:", err)
		return 1
	}
	slog.Info("event log loaded", "path", *logPath, "issues", st.Len())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "intrack:", err)
		return 1
	}
	session := terminal.NewSession(screen, terminal.Config{
		TickRate:  cfg.TickRate,
		FrameRate: cfg.FrameRate,
		Mouse:     cfg.Mouse,
		Paste:     cfg.PasteEnabled(),
	})

	defer func() { core.HandleCrash(recover()) }()

	if err := session.Enter(); err != nil {
		fmt.Fprintln(os.Stderr, "intrack:", err)
		return 1
	}

	a := app.New(st, *logPath, cfg.ResolveAuthor(), session)
	runErr := a.Run()

	session.Close()

	if runErr != nil {
		// The screen is back to normal; the error is readable.
		fmt.Fprintln(os.Stderr, "intrack:", runErr)
		return 1
	}
	return 0
}
