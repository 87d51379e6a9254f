package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var stdin io.Reader = os.Stdin

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// truncate shortens s to maxLen characters, counting runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// parseDate accepts YYYY-MM-DD, "today" or "yesterday" and returns YYYY-MM-DD
func parseDate(s string) (string, error) {
	switch s {
	case "", "today":
		return time.Now().Format("2006-01-02"), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format("2006-01-02"), nil
	default:
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return "", fmt.Errorf("expected format: YYYY-MM-DD, 'today', or 'yesterday'")
		}
		return t.Format("2006-01-02"), nil
	}
}

// firstLine returns the first line of multi-line text
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
