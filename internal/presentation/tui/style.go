package tui

import (
	"fmt"
	"os"

	"github.com/aretw0/animflow"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Style colors command output. With termenv.Ascii it prints plain text.
type Style struct {
	Profile termenv.Profile
}

// NewStyle detects the color profile of stdout. Color is disabled when noColor
// is set or stdout is not a terminal.
func NewStyle(noColor bool) Style {
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		return Style{Profile: termenv.Ascii}
	}
	return Style{Profile: termenv.ColorProfile()}
}

func (s Style) paint(text, color string) string {
	return s.Profile.String(text).Foreground(s.Profile.Color(color)).String()
}

// State highlights a state id.
func (s Style) State(id string) string {
	return s.Profile.String(id).Foreground(s.Profile.Color("#38bdf8")).Bold().String()
}

// Diagnostic formats an authoring issue, colored by how much it changed the graph.
func (s Style) Diagnostic(d domain.Diagnostic) string {
	color := "#facc15"
	switch d.Code {
	case domain.DiagDanglingTransition, domain.DiagUnknownCondition, domain.DiagUnknownVariant:
		color = "#f87171"
	case domain.DiagUnreachable:
		color = "#a3a3a3"
	}
	return fmt.Sprintf("%s %s: %s", s.paint("["+string(d.Code)+"]", color), d.Subject, d.Message)
}

// Step renders a simulation step for animflow.Runner.
func (s Style) Step(st animflow.Step) string {
	from := s.paint("start", "#a3a3a3")
	if st.From != "" {
		from = s.State(st.From)
	}
	return fmt.Sprintf("[%4d] %7.3fs  %s -> %s", st.Tick, st.Time, from, s.State(st.To))
}

// Success prints a green message.
func (s Style) Success(msg string) string {
	return s.paint(msg, "#4ade80")
}
