// Package render formats topics for the terminal using the stored light or
// dark theme.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/topics/internal/settings"
	"github.com/mesh-intelligence/topics/pkg/types"
)

// Palette colors for each theme.
var (
	lightForeground = lipgloss.Color("#101F38")
	lightAccent     = lipgloss.Color("#2E7D32")
	lightMuted      = lipgloss.Color("#5F6B7A")

	darkForeground = lipgloss.Color("#F2F2F2")
	darkAccent     = lipgloss.Color("#8BC34A")
	darkMuted      = lipgloss.Color("#9AA5B1")
)

// Styles holds the styles for one theme.
type Styles struct {
	Title  lipgloss.Style
	Name   lipgloss.Style
	ID     lipgloss.Style
	Header lipgloss.Style
	URL    lipgloss.Style
	Muted  lipgloss.Style
}

// NewStyles returns the styles for theme, bound to the color profile of lr.
func NewStyles(lr *lipgloss.Renderer, theme settings.Theme) Styles {
	fg, accent, muted := lightForeground, lightAccent, lightMuted
	if theme.IsDark() {
		fg, accent, muted = darkForeground, darkAccent, darkMuted
	}
	return Styles{
		Title:  lr.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Name:   lr.NewStyle().Bold(true).Foreground(fg),
		ID:     lr.NewStyle().Foreground(muted),
		Header: lr.NewStyle().Foreground(accent),
		URL:    lr.NewStyle().Foreground(fg).Underline(true),
		Muted:  lr.NewStyle().Foreground(muted).Italic(true),
	}
}

// Renderer writes topics to an io.Writer.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// New returns a Renderer for theme. Colors are dropped when w is not a
// terminal.
func New(w io.Writer, theme settings.Theme) *Renderer {
	return &Renderer{w: w, styles: NewStyles(lipgloss.NewRenderer(w), theme)}
}

// List writes one line per topic: id, name and link count.
func (r *Renderer) List(topics []types.Topic) error {
	if len(topics) == 0 {
		_, err := fmt.Fprintln(r.w, r.styles.Muted.Render("No topics found."))
		return err
	}

	width := 0
	for _, t := range topics {
		width = max(width, lipgloss.Width(t.ID))
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Tech Topics"))
	b.WriteString("\n")
	for _, t := range topics {
		id := r.styles.ID.Render(fmt.Sprintf("%-*s", width, t.ID))
		count := r.styles.Muted.Render(fmt.Sprintf("(%d %s)", len(t.Links), plural(len(t.Links), "link", "links")))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, id, "  ", r.styles.Name.Render(t.Name), " ", count))
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Topic writes one topic with its numbered links, split into header and URL.
func (r *Renderer) Topic(t types.Topic) error {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(t.Name))
	b.WriteString("\n")
	b.WriteString(r.styles.Muted.Render("id:    ") + r.styles.ID.Render(t.ID) + "\n")
	b.WriteString(r.styles.Muted.Render("image: ") + r.styles.ID.Render(imageLabel(t.Image)) + "\n\n")

	if len(t.Links) == 0 {
		b.WriteString(r.styles.Muted.Render("No links yet.") + "\n")
	}
	for i, raw := range t.Links {
		header, url := types.SplitLink(raw)
		line := r.styles.ID.Render(fmt.Sprintf("%2d. ", i+1))
		if header != "" {
			line += r.styles.Header.Render(header) + " "
		}
		line += r.styles.URL.Render(url)
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// imageLabel shows bundled images by asset name and others by URI.
func imageLabel(image string) string {
	if name := types.AssetName(image); name != "" {
		return name + " (bundled)"
	}
	return image
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
