package tui

import (
	"fmt"
	"strings"

	"tool-directory/pkg/models"
	"tool-directory/pkg/notify"
)

// renderErrorView renders a standard error view with exit message
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// renderInlineError renders a field error under its input
func renderInlineError(msg string) string {
	if msg == "" {
		return ""
	}
	return errorStyle.Render("  " + msg)
}

// renderToast renders the live toast in the style of its kind
func renderToast(t notify.Toast) string {
	switch t.Kind {
	case notify.KindSuccess:
		return toastSuccessStyle.Render(renderSuccess(t.Message))
	case notify.KindError:
		return toastErrorStyle.Render(renderError(t.Message))
	default:
		return toastInfoStyle.Render(t.Message)
	}
}

// truncate shortens s to maxLen runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// renderToolDetails renders the stored fields of a tool
func renderToolDetails(tool models.Tool) string {
	var b strings.Builder

	b.WriteString(fieldLabelStyle.Render("ID:"))
	b.WriteString(fmt.Sprintf(" %s\n", toolIDStyle.Render(tool.ID.String()[:8]+"...")))

	b.WriteString(fieldLabelStyle.Render("URL:"))
	b.WriteString(fmt.Sprintf(" %s\n", tool.URL))

	b.WriteString(fieldLabelStyle.Render("Tags:"))
	b.WriteString(fmt.Sprintf(" %s\n", models.JoinTags(tool.Tags)))

	b.WriteString(fieldLabelStyle.Render("Added:"))
	b.WriteString(fmt.Sprintf(" %s\n", tool.Date))

	b.WriteString(fieldLabelStyle.Render("Description:"))
	b.WriteString(wrapText(tool.Description, 72, " "))

	return b.String()
}

// wrapText wraps text to a specified width, breaking at word boundaries
func wrapText(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + "\n"
	}

	var b strings.Builder
	line := ""
	for _, word := range words {
		if len(line)+len(word)+1 > width {
			b.WriteString(fmt.Sprintf("%s%s\n", indent, line))
			line = word
		} else {
			if line != "" {
				line += " "
			}
			line += word
		}
	}
	if line != "" {
		b.WriteString(fmt.Sprintf("%s%s\n", indent, line))
	}
	return b.String()
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}

// handleQuitKeys checks if a key should quit the current view
func handleQuitKeys(key string) bool {
	switch key {
	case "ctrl+c", "q", "esc":
		return true
	}
	return false
}
