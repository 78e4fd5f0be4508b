package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, so lipgloss.JoinHorizontal produces stable split panes.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		w := xansi.StringWidth(ln)
		if w > width {
			if width <= 0 {
				ln = ""
			} else if width == 1 {
				ln = xansi.Cut(ln, 0, 1)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

// inputLine renders a text-input view as one background-filled row of
// exactly width columns. The view is flattened first: the title field is
// single-line by contract, and a stray newline from cursor styling would
// otherwise wrap the editor pane.
func inputLine(view string, width int) string {
	if width < 10 {
		width = 10
	}
	for _, nl := range []string{"\r\n", "\n", "\r"} {
		view = strings.ReplaceAll(view, nl, " ")
	}
	view = " " + view + " "

	switch w := xansi.StringWidth(view); {
	case w > width:
		// Reset styling at the cut so the cursor's ANSI state cannot bleed
		// into the rest of the row.
		view = xansi.Cut(view, 0, width) + "\x1b[0m"
	case w < width:
		fill := strings.Repeat(" ", width-w)
		view += lipgloss.NewStyle().Background(colorInputBg).Render(fill)
	}
	return view
}

func truncateInline(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if max <= 0 || xansi.StringWidth(s) <= max {
		return s
	}
	if max == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, max-1) + "…"
}
