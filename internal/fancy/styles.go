package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Common styles that can be used across the application
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	StepStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	MenuStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	ExtraStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	SlotStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	OkStyle = lipgloss.NewStyle().
		Foreground(ColorGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// StepText styles a wizard step name
func StepText(text string) string {
	return StepStyle.Render(text)
}

// MenuText styles a menu item name
func MenuText(text string) string {
	return MenuStyle.Render(text)
}

// ExtraText styles an upsell item name
func ExtraText(text string) string {
	return ExtraStyle.Render(text)
}

// SlotText styles a delivery time slot
func SlotText(text string) string {
	return SlotStyle.Render(text)
}

// OkText styles success status text (green)
func OkText(text string) string {
	return OkStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// SummaryText styles summary information (dark gray)
func SummaryText(text string) string {
	return BranchStyle.Render(text)
}

// CountText styles count numbers (cyan)
func CountText(text string) string {
	return StepStyle.Render(text)
}
