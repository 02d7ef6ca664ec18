package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	textStyleColor      = lipgloss.AdaptiveColor{Light: "#36EEE0", Dark: "#00FFFF"}
	mutedStyleColor     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	warningStyleColor   = lipgloss.AdaptiveColor{Light: "#FFA500", Dark: "#FFA500"}
	titleStyleColor     = lipgloss.AdaptiveColor{Light: "#071330", Dark: "#F652A0"}
	secondaryStyleColor = lipgloss.AdaptiveColor{Light: "#214358", Dark: "#AEB8C4"}
	commandStyle        = lipgloss.NewStyle().Foreground(textStyleColor)
)

func Title(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(titleStyleColor).Render(text)
}

func Bold(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(textStyleColor).Render(text)
}

func Secondary(text string) string {
	return lipgloss.NewStyle().Foreground(secondaryStyleColor).Render(text)
}

func Muted(text string) string {
	return lipgloss.NewStyle().Foreground(mutedStyleColor).Render(text)
}

func Warning(text string) string {
	return lipgloss.NewStyle().Foreground(warningStyleColor).Render(text)
}

// Command renders an invocation of this CLI for help and error text.
func Command(cmd string, args ...string) string {
	cmdline := "shopfront " + strings.Join(append([]string{cmd}, args...), " ")
	return commandStyle.Render(cmdline)
}

func MaxWidth(text string, width int) string {
	len := lipgloss.Width(text)
	if len > width {
		text = text[:width-3] + "..."
	}
	return text
}
