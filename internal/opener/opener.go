// Package opener hands URLs to the host's default viewer.
package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrEmptyURL is returned when Open is called without a URL.
var ErrEmptyURL = errors.New("url must not be empty")

// Opener opens a URL in an external viewer.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// commandFunc builds the command that opens url. Overridden in tests.
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// System opens URLs with the platform launcher.
type System struct {
	goos    string
	command commandFunc
}

// NewSystem returns an Opener for the current platform.
func NewSystem() *System {
	return &System{goos: runtime.GOOS, command: exec.CommandContext}
}

// Open starts the platform launcher for url and waits for it to exit.
func (s *System) Open(ctx context.Context, url string) error {
	if url == "" {
		return ErrEmptyURL
	}
	name, args := launcher(s.goos, url)
	cmd := s.command(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("open %s with %s: %w: %s", url, name, err, out)
	}
	return nil
}

// launcher returns the command and arguments that open url on goos.
func launcher(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
