package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// RootMenuHelpContent returns help for root menu
func RootMenuHelpContent(canBrowse bool) string {
	items := []HelpItem{
		{"1", "Submit a tool"},
	}
	if canBrowse {
		items = append(items, HelpItem{"2", "Browse the directory"})
	}
	items = append(items,
		HelpItem{"q / Esc", "Quit"},
		HelpItem{"?", "Toggle this help"},
	)
	return renderHelpItems(items)
}

// AddToolFormHelpContent returns help for the submission form
func AddToolFormHelpContent() string {
	items := []HelpItem{
		{"Tab / Shift+Tab", "Next / previous field"},
		{"Enter / Ctrl+S", "Submit"},
		{"← → ↑ ↓", "Move the date cursor by day / week"},
		{"PgUp / PgDn", "Move the date cursor by month"},
		{"t", "Jump to today"},
		{"Space", "Pick the highlighted date"},
		{"Esc", "Cancel submission / Quit"},
		{"F1", "Toggle this help"},
	}
	return renderHelpItems(items)
}

// ListToolsHelpContent returns help for the directory browser
func ListToolsHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Move selection"},
		{"q / Esc", "Quit"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	for _, item := range items {
		keyStyle := boldStyle.Foreground(colorPrimary)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
