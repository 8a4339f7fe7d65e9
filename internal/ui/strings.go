package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens value to limit runes, ending in "..." when cut.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// cell fits value into exactly width display columns.
func cell(value string, width int) string {
	value = truncate(value, width)
	if pad := width - lipgloss.Width(value); pad > 0 {
		return value + strings.Repeat(" ", pad)
	}
	return value
}

// orAll renders an absent filter value.
func orAll(value string) string {
	if strings.TrimSpace(value) == "" {
		return "All"
	}
	return value
}

// cycle returns the element after current in values, wrapping around. An
// unknown current yields the first element.
func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[0]
}
