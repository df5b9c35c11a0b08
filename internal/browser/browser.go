// Package browser drives a real Chrome instance over the DevTools protocol.
// Every lookup on a Session returns immediately, waiting with a deadline is the
// caller's job.
package browser

import (
	"context"
	"os/exec"
	"time"
)

// Session is a single browser tab owned by one quote call.
type Session interface {
	// Navigate loads url and blocks until the load event fires.
	Navigate(ctx context.Context, url string) error
	// Count returns how many elements currently match selector.
	Count(ctx context.Context, selector string) (int, error)
	// Click clicks the first element matching selector.
	Click(ctx context.Context, selector string) error
	// ClickNth clicks the index-th element matching selector.
	ClickNth(ctx context.Context, selector string, index int) error
	// ClickText clicks the first element matching selector whose text contains
	// text case-insensitively, found is false if none does.
	ClickText(ctx context.Context, selector, text string) (found bool, err error)
	// SetValue clears the input matching selector and types value into it.
	SetValue(ctx context.Context, selector, value string) error
	// OuterHTML returns the outer html of the first element matching selector.
	OuterHTML(ctx context.Context, selector string) (string, error)
	// Close releases the tab and the browser process behind it.
	Close() error
}

// Opener starts sessions.
type Opener interface {
	Open(ctx context.Context, opts Options) (Session, error)
}

// Options configures how a session's browser is started.
type Options struct {
	Headless  bool
	UserAgent string
	// ExecPath overrides the chrome binary lookup.
	ExecPath string
	// RemoteURL connects to an already running browser instead of starting one,
	// e.g. ws://127.0.0.1:9222.
	RemoteURL    string
	WindowWidth  int
	WindowHeight int
	// StartTimeout bounds how long starting the browser may take.
	StartTimeout time.Duration
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

var execNames = []string{
	"headless_shell",
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"chrome",
}

// FindExecPath looks for a chrome binary on PATH the same way the allocator does.
func FindExecPath() (string, bool) {
	for _, name := range execNames {
		path, err := exec.LookPath(name)
		if err == nil {
			return path, true
		}
	}
	return "", false
}
