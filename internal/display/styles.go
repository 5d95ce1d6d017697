package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/robobarista/internal/domain"
)

// ── Palette ──────────────────────────────────────────────────────

const (
	colorSlate  = lipgloss.Color("#94a3b8")
	colorLatte  = lipgloss.Color("#fde68a")
	colorFoam   = lipgloss.Color("#d4d4d8")
	colorDim    = lipgloss.Color("#71717a")
	colorCoral  = lipgloss.Color("#fca5a5")
	colorEcho   = lipgloss.Color("#a1a1aa")
	colorBarBg  = lipgloss.Color("#27272a")
	promptArrow = "> "
)

// BannerStyle is the muted slate used for the startup banner.
var BannerStyle = lipgloss.NewStyle().Foreground(colorSlate)

// theme holds the styles for one output. Each renderer detects the colour
// profile of its own writer, so piping output to a file yields plain text.
type theme struct {
	chat   lipgloss.Style
	info   lipgloss.Style
	hint   lipgloss.Style
	urgent lipgloss.Style
	prompt lipgloss.Style
	echo   lipgloss.Style
	status lipgloss.Style
	cursor lipgloss.Style
}

func newTheme(r *lipgloss.Renderer) theme {
	return theme{
		chat:   r.NewStyle().Foreground(colorLatte),
		info:   r.NewStyle().Foreground(colorFoam),
		hint:   r.NewStyle().Foreground(colorDim).Italic(true),
		urgent: r.NewStyle().Foreground(colorCoral).Bold(true),
		prompt: r.NewStyle().Foreground(colorSlate),
		echo:   r.NewStyle().Foreground(colorEcho),
		status: r.NewStyle().Background(colorBarBg).Foreground(colorEcho),
		cursor: r.NewStyle().Foreground(colorSlate),
	}
}

// message renders text for the given kind, indented like the rest of the
// scrollback.
func (t theme) message(kind domain.MessageKind, text string) string {
	var s lipgloss.Style
	switch kind {
	case domain.MessageChat:
		s = t.chat
	case domain.MessageHint:
		s = t.hint
	case domain.MessageUrgent:
		s = t.urgent
	default:
		s = t.info
	}
	return s.Render("  " + text)
}
