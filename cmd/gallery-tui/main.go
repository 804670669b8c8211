package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"media-gallery/internal/autoscroll"
	"media-gallery/internal/logging"
	"media-gallery/internal/memory"
	"media-gallery/internal/session"
	"media-gallery/internal/startup"
	"media-gallery/internal/theme"
	"media-gallery/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("gallery-tui needs an interactive terminal")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	closeLog, err := redirectLogs(os.Getenv("GALLERY_LOG_FILE"))
	if err != nil {
		return err
	}
	defer closeLog()

	startup.LogMemoryConfig(memory.ConfigureFromEnv())
	config, err := startup.LoadConfig()
	if err != nil {
		return err
	}

	monitor := memory.NewMonitor(memory.DefaultConfig())
	monitor.Start()
	defer monitor.Stop()

	vp := autoscroll.NewTracker(0, 0)
	themes := theme.NewProvider(config.Settings.Theme)
	opts := config.SessionOptions()
	opts.IngestGate = monitor
	opts.Viewport = vp
	opts.Theme = themes
	sess := session.New(opts)
	defer sess.Close()

	p := tea.NewProgram(tui.New(sess, vp, themes, config.GalleryDir), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// redirectLogs keeps log lines off the screen the program draws on. Without
// a log file they are discarded.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		logging.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logging.SetOutput(f)
	return func() { _ = f.Close() }, nil
}
