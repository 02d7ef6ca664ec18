package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxWidth(t *testing.T) {
	assert.Equal(t, "short", MaxWidth("short", 10))
	assert.Equal(t, "exactly10!", MaxWidth("exactly10!", 10))

	truncated := MaxWidth("a very long product description", 10)
	assert.Len(t, truncated, 10)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}

func TestCommand(t *testing.T) {
	assert.Contains(t, Command("login"), "shopfront login")
	assert.Contains(t, Command("products", "get", "5"), "shopfront products get 5")
}

func TestStylesPreserveText(t *testing.T) {
	for name, fn := range map[string]func(string) string{
		"title":     Title,
		"bold":      Bold,
		"secondary": Secondary,
		"muted":     Muted,
		"warning":   Warning,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, fn("hello"), "hello")
		})
	}
}
