package cli

import "github.com/charmbracelet/lipgloss"

// Adaptive colors that work on light and dark terminals.
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#FF4672"}
	colorAmber  = lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FFA500"}
	colorSubtle = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

var (
	upStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorGreen)

	downStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAmber)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)
)

// renderState colors a region or group state. Stale groups belong to a down
// region, their last reported state is shown dimmed.
func renderState(state string, stale bool) string {
	if stale {
		return subtleStyle.Render(state + " (stale)")
	}
	switch state {
	case "up":
		return upStyle.Render(state)
	case "down", "incident":
		return downStyle.Render(state)
	case "warn":
		return warnStyle.Render(state)
	default:
		return subtleStyle.Render(state)
	}
}

func renderKind(kind string) string {
	switch kind {
	case "opened":
		return downStyle.Render(kind)
	case "closed":
		return upStyle.Render(kind)
	default:
		return subtleStyle.Render(kind)
	}
}
