// Package styles provides shared lipgloss styles for CLI and TUI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/malla-dev/malla/internal/core/curriculum"
)

// Semantic colors shared by the status table and the TUI.
var (
	ColorSuccess = lipgloss.Color("#9ece6a")
	ColorWarning = lipgloss.Color("#e0af68")
	ColorMuted   = lipgloss.Color("#565f89")
	ColorPrimary = lipgloss.Color("#7aa2f7")
	ColorError   = lipgloss.Color("#f7768e")
)

var (
	// Completed renders completed courses.
	Completed = lipgloss.NewStyle().Foreground(ColorSuccess)
	// Available renders courses eligible to be marked complete.
	Available = lipgloss.NewStyle().Foreground(ColorWarning)
	// Locked renders courses with unmet requirements.
	Locked = lipgloss.NewStyle().Foreground(ColorMuted)

	// Title renders section headings.
	Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	// Error renders failure notices.
	Error = lipgloss.NewStyle().Foreground(ColorError)
)

// ForStatus returns the style for a derived course status.
func ForStatus(status curriculum.Status) lipgloss.Style {
	switch status {
	case curriculum.StatusCompleted:
		return Completed
	case curriculum.StatusAvailable:
		return Available
	default:
		return Locked
	}
}

// StatusGlyph returns the single-character marker for a status.
func StatusGlyph(status curriculum.Status) string {
	switch status {
	case curriculum.StatusCompleted:
		return "✓"
	case curriculum.StatusAvailable:
		return "○"
	default:
		return "✗"
	}
}
