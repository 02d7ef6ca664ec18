package tui

import (
	"fmt"

	"github.com/shopfront/go-client/logger"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	messageOKColor      = lipgloss.AdaptiveColor{Light: "#009900", Dark: "#00FF00"}
	messageOKStyle      = lipgloss.NewStyle().Foreground(messageOKColor)
	messageTextColor    = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	messageTextStyle    = lipgloss.NewStyle().Foreground(messageTextColor)
	messageWarningColor = lipgloss.AdaptiveColor{Light: "#990000", Dark: "#FF0000"}
	messageWarningStyle = lipgloss.NewStyle().Foreground(messageWarningColor)
	messageLockColor    = lipgloss.AdaptiveColor{Light: "#DE970B", Dark: "#F6BE00"}
	messageLockStyle    = lipgloss.NewStyle().Foreground(messageLockColor)
)

func ShowSuccess(msg string, args ...any) {
	body := messageOKStyle.Render(" ✓ ") + messageTextStyle.Render(fmt.Sprintf(msg, args...))
	fmt.Println(body)
}

func ShowLock(msg string, args ...any) {
	body := messageLockStyle.Render(" 🔒" + messageLockStyle.Render(fmt.Sprintf(msg, args...)))
	fmt.Println(body)
}

func ShowWarning(msg string, args ...any) {
	body := messageWarningStyle.Render(" ✕ ") + messageTextStyle.Render(fmt.Sprintf(msg, args...))
	fmt.Println(body)
}

func ShowError(msg string, args ...any) {
	body := messageWarningStyle.Render(" ⚠ ") + messageTextStyle.Render(fmt.Sprintf(msg, args...))
	fmt.Println(body)
}

func Ask(logger logger.Logger, title string, defaultValue bool) bool {
	confirm := defaultValue

	if err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes!").
		Negative("No").
		Value(&confirm).
		Inline(false).
		Run(); err != nil {
		logger.Fatal("%s", err)
	}
	return confirm
}
