package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/shopfront/go-client/logger"
)

var inputTheme = huh.ThemeBase16()

func Input(logger logger.Logger, title string, description string) string {
	return InputWithPlaceholder(logger, title, description, "")
}

func InputWithPlaceholder(logger logger.Logger, title string, description string, placeholder string) string {
	var value string
	if err := huh.NewInput().
		Title(title).
		Prompt("> ").
		Description(description).
		Placeholder(placeholder).
		Value(&value).
		WithTheme(inputTheme).
		Run(); err != nil {
		logger.Fatal("%s", err)
	}
	if value == "" {
		return placeholder
	}
	return value
}

func Password(logger logger.Logger, title string, description string) string {
	var value string
	if err := huh.NewInput().
		Title(title).
		Prompt("> ").
		Description(description + "\n").
		EchoMode(huh.EchoModePassword).
		Value(&value).
		WithTheme(inputTheme).
		Run(); err != nil {
		logger.Fatal("%s", err)
	}
	return value
}

// readKey reads one keypress with the terminal in raw mode so the user
// does not have to press enter.
func readKey() (byte, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, err
	}
	defer term.Restore(fd, state)
	buf := make([]byte, 1)
	if _, err := os.Stdin.Read(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// AskForConfirm prompts for a single keypress, returning defaultChoice on
// a bare newline. Returns 0 when stdin is not a terminal.
func AskForConfirm(message string, defaultChoice byte) byte {
	if !HasTTY {
		return 0
	}
	fmt.Print(Secondary(message + " "))
	key, err := readKey()
	if err != nil {
		return defaultChoice
	}
	fmt.Println()
	if key == '\n' || key == '\r' {
		return defaultChoice
	}
	return key
}

func WaitForAnyKeyMessage(message string) {
	if !HasTTY {
		return
	}
	fmt.Print(Secondary(message))
	readKey()
	fmt.Println()
}
