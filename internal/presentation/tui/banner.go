package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the animflow banner and version.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	// Warm gradient, one color per line
	lines := []struct {
		text  string
		color string
	}{
		{`              _       __ _               `, "#fbbf24"},
		{`  __ _ _ __  (_)_ __ / _| | _____      __`, "#f59e0b"},
		{` / _' | '_ \ | | '  \  _| |/ _ \ \ /\ / /`, "#f97316"},
		{` \__,_|_| |_||_|_|_|_|_| |_\___/\_/\_/ `, "#ef4444"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
