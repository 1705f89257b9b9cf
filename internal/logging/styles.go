package logging

import "github.com/charmbracelet/lipgloss"

// Palette for level prefixes.
var (
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
)

// prefixStyles builds the per-prefix styles on r, so colour is decided by the
// writer the renderer is bound to rather than by os.Stdout.
func prefixStyles(r *lipgloss.Renderer) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"[DEBUG]": r.NewStyle().
			Foreground(colorGray),
		"[DETAIL]": r.NewStyle().
			Foreground(colorBlue),
		"[WARNING]": r.NewStyle().
			Foreground(colorYellow).
			Bold(true),
		"[ERROR]": r.NewStyle().
			Foreground(colorRed).
			Bold(true),
	}
}
