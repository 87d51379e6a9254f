package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// oneLine folds a multiline value for list display
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func statusLine(msg string) string {
	if msg == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(successColor).Render("  "+msg) + "\n\n"
}

func errorLine(err error) string {
	if err == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(errorColor).
		Render(fmt.Sprintf("  Error: %v", err)) + "\n\n"
}
