package tui

import "github.com/charmbracelet/lipgloss"

// SuccessText is the fixed content of the success region.
const SuccessText = "Your message has been sent. Thank you!"

// MinFormWidth is the narrowest width the form is laid out at.
const MinFormWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	helpStyle = lipgloss.NewStyle().MarginTop(1)
)

// SuccessNotice returns the style of the success region.
func SuccessNotice(width int) lipgloss.Style {
	return noticeBox(width).
		BorderForeground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}).
		Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
}

// ErrorNotice returns the style of the error region.
func ErrorNotice(width int) lipgloss.Style {
	return noticeBox(width).
		BorderForeground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}).
		Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
}

func noticeBox(width int) lipgloss.Style {
	// The rounded border takes two columns.
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		MarginTop(1).
		Width(width - 2)
}

// formWidth clamps the terminal width to a usable form width.
func formWidth(termWidth int) int {
	w := termWidth - 4
	if w < MinFormWidth {
		w = MinFormWidth
	}
	if w > 100 {
		w = 100
	}
	return w
}
