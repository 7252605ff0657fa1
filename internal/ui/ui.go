// Package ui renders shop records for the terminal.
//
// Colors follow the terminal's capabilities as detected by termenv. They are
// dropped entirely when color is disabled in the config, with --no-color, or
// through the NO_COLOR environment variable.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// Palette.
var (
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#1F4E8C", Dark: "#7AB8FF"}
	ColorPass    = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#8BC34A"}
	ColorWarn    = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFC107"}
	ColorFail    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E53935"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#D0D4DA", Dark: "#3A4658"}
	ColorRepair  = lipgloss.AdaptiveColor{Light: "#6A1B9A", Dark: "#CE93D8"}
	ColorDefault = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#F2F2F2"}
)

// Unknown is shown for references that no longer resolve.
const Unknown = "Desconhecido"

// Renderer styles text for one output.
type Renderer struct {
	lg *lipgloss.Renderer

	accent lipgloss.Style
	pass   lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	muted  lipgloss.Style
	title  lipgloss.Style
}

// New returns a renderer for w. With color false every style renders plain
// text.
func New(w io.Writer, color bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if !color || termenv.EnvNoColor() {
		lg.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		lg:     lg,
		accent: lg.NewStyle().Foreground(ColorAccent).Bold(true),
		pass:   lg.NewStyle().Foreground(ColorPass),
		warn:   lg.NewStyle().Foreground(ColorWarn),
		fail:   lg.NewStyle().Foreground(ColorFail).Bold(true),
		muted:  lg.NewStyle().Foreground(ColorMuted),
		title:  lg.NewStyle().Foreground(ColorAccent).Bold(true).MarginTop(1),
	}
}

// Colored reports whether the renderer emits ANSI colors.
func (r *Renderer) Colored() bool {
	return r.lg.ColorProfile() != termenv.Ascii
}

// Accent highlights menu headings and ids.
func (r *Renderer) Accent(s string) string { return r.accent.Render(s) }

// Pass renders a success message.
func (r *Renderer) Pass(s string) string { return r.pass.Render(s) }

// Warn renders a warning.
func (r *Renderer) Warn(s string) string { return r.warn.Render(s) }

// Fail renders an error message.
func (r *Renderer) Fail(s string) string { return r.fail.Render(s) }

// Muted renders secondary text.
func (r *Renderer) Muted(s string) string { return r.muted.Render(s) }

// Title renders a section heading.
func (r *Renderer) Title(s string) string { return r.title.Render(s) }

// Status renders the staff label of st in its lifecycle color.
func (r *Renderer) Status(st schema.Status) string {
	var c lipgloss.TerminalColor
	switch st {
	case schema.StatusAwaitingEvaluation:
		c = ColorWarn
	case schema.StatusInRepair:
		c = ColorRepair
	case schema.StatusFinalized:
		c = ColorAccent
	case schema.StatusDelivered:
		c = ColorPass
	default:
		c = ColorFail
	}
	return r.lg.NewStyle().Foreground(c).Render(st.Label())
}
