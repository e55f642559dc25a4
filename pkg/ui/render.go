package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/hookhub/pkg/errors"
)

// Report is the outcome of one simulated session
type Report struct {
	State         string   `json:"state"`
	Plugins       []string `json:"plugins"`
	Phases        []string `json:"phases"`
	Subscriptions int      `json:"subscriptions"`
	Lines         []string `json:"lines"`
	Faults        []string `json:"faults,omitempty"`
}

// Render writes r to w in format f. FormatAuto renders as text; callers
// resolve it against their output first.
func Render(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode report")
		}
		return nil
	case FormatTerminal:
		_, err := io.WriteString(w, renderStyled(r, NewStyles(lipgloss.NewRenderer(w))))
		return err
	default:
		_, err := io.WriteString(w, renderStyled(r, PlainStyles()))
		return err
	}
}

func renderStyled(r Report, s Styles) string {
	var b strings.Builder

	b.WriteString(s.Title.Render("hookhub session"))
	b.WriteString("\n")
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", s.Label.Render(label+":"), s.Value.Render(value))
	}
	field("state", r.State)
	field("plugins", strings.Join(r.Plugins, ", "))
	field("phases", strings.Join(r.Phases, " → "))
	field("subscriptions", fmt.Sprint(r.Subscriptions))

	b.WriteString("\n")
	if len(r.Lines) == 0 {
		b.WriteString(s.Line.Render("(no callbacks ran)"))
		b.WriteString("\n")
	}
	for _, line := range r.Lines {
		b.WriteString(s.Line.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(r.Faults) == 0 {
		b.WriteString(s.Success.Render("no faults"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(s.Title.Render(fmt.Sprintf("%d fault(s)", len(r.Faults))))
	b.WriteString("\n")
	for _, f := range r.Faults {
		b.WriteString(s.Fault.Render(f))
		b.WriteString("\n")
	}
	return b.String()
}
