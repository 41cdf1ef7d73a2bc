package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the adaptive palette and the styles built from it.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor

	Title    lipgloss.Style
	Word     lipgloss.Style
	Meta     lipgloss.Style
	Label    lipgloss.Style
	Example  lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Status   lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultTheme returns the standard theme rendered through r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}, // Blue
		Accent:  lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FCD34D"}, // Amber
		Subtext: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}, // Gray
		Border:  lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
		Success: lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#86EFAC"}, // Green
	}

	t.Title = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Word = r.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1)
	t.Meta = r.NewStyle().Foreground(t.Subtext)
	t.Label = r.NewStyle().Foreground(t.Accent).Bold(true)
	t.Example = r.NewStyle().Italic(true)
	t.Card = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
	t.Selected = r.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)
	t.Item = r.NewStyle().PaddingLeft(2)
	t.Status = r.NewStyle().Foreground(t.Success)
	t.Dim = r.NewStyle().Foreground(t.Subtext)

	return t
}
