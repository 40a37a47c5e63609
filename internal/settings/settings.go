// Package settings persists user preferences next to the topic snapshot.
// Today that is only the light/dark theme.
package settings

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/topics/pkg/types"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"

	// DefaultTheme applies when nothing valid is stored.
	DefaultTheme = ThemeDark
)

// ParseTheme converts s to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (valid: dark, light)", s)
	}
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t != ThemeLight
}

// Settings reads and writes preferences through a KV backend.
type Settings struct {
	kv     types.KV
	logger *zap.Logger
}

// New returns Settings backed by kv. A nil logger is replaced by a no-op.
func New(kv types.KV, logger *zap.Logger) *Settings {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Settings{kv: kv, logger: logger}
}

// Theme returns the stored theme, or DefaultTheme when it is missing,
// unreadable or unknown.
func (s *Settings) Theme() Theme {
	v, ok, err := s.kv.Get(types.ThemeKey)
	if err != nil {
		s.logger.Warn("loading theme failed, using default", zap.Error(err))
		return DefaultTheme
	}
	if !ok {
		return DefaultTheme
	}
	theme, err := ParseTheme(v)
	if err != nil {
		s.logger.Warn("stored theme is invalid, using default", zap.String("value", v))
		return DefaultTheme
	}
	return theme
}

// SetTheme stores theme.
func (s *Settings) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.kv.Set(types.ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the stored theme and returns the new value.
func (s *Settings) ToggleTheme() (Theme, error) {
	next := s.Theme().Toggled()
	if err := s.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
