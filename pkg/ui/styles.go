package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color definitions using AdaptiveColor for light/dark terminals
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	PhaseColor   = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
)

// Styles groups the styles a report is drawn with
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Line    lipgloss.Style
	Success lipgloss.Style
	Fault   lipgloss.Style
}

// NewStyles builds styles bound to renderer
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Foreground(HeadingColor).Bold(true),
		Label:   r.NewStyle().Foreground(MutedColor),
		Value:   r.NewStyle().Foreground(PhaseColor).Bold(true),
		Line:    r.NewStyle().PaddingLeft(2),
		Success: r.NewStyle().Foreground(SuccessColor),
		Fault:   r.NewStyle().Foreground(ErrorColor).Bold(true).PaddingLeft(2),
	}
}

// PlainStyles returns styles that emit no escape codes
func PlainStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewStyles(r)
}
