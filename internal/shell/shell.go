// Package shell performs the desktop window's one-time setup. The window is
// passed in as a capability so the backend never depends on a GUI toolkit.
package shell

import (
	"fmt"
	"io"
	"os"
	"sync"

	"vincowealth/internal/logger"
)

// Title is the default main window title.
const Title = "Vinco Wealth Management"

// Window is the part of the host window the backend may touch.
type Window interface {
	SetTitle(title string) error
}

// Options controls Setup.
type Options struct {
	// Title overrides the window title.
	Title string
	// Production suppresses the diagnostic lines.
	Production bool
	// DBPath is reported in the diagnostics.
	DBPath string
	// Out receives the diagnostics. Defaults to os.Stdout.
	Out io.Writer
}

// Setup titles the window and, outside production, prints where the store
// will live.
func Setup(w Window, opts Options) error {
	title := opts.Title
	if title == "" {
		title = Title
	}
	if w != nil {
		if err := w.SetTitle(title); err != nil {
			return fmt.Errorf("set window title: %w", err)
		}
	}

	if opts.Production {
		return nil
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "Vinco Wealth Management app started successfully!")
	fmt.Fprintf(out, "Database will be created at: %s\n", opts.DBPath)
	return nil
}

// HeadlessWindow stands in for a real window when the backend runs on its
// own. It remembers the title and logs changes.
type HeadlessWindow struct {
	mu    sync.Mutex
	title string
}

// SetTitle implements Window.
func (h *HeadlessWindow) SetTitle(title string) error {
	h.mu.Lock()
	h.title = title
	h.mu.Unlock()

	logger.Named("shell").Debugw("window title set", "title", title)
	return nil
}

// Title returns the last title set.
func (h *HeadlessWindow) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}
