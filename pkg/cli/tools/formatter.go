package tools

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"tool-directory/pkg/models"
	"tool-directory/pkg/validation"
)

// Truncate shortens s to maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// ShortenID returns the first 8 characters of a UUID followed by "..."
func ShortenID(id uuid.UUID) string {
	return id.String()[:8] + "..."
}

// FormatTable formats tools as a table for CLI output
func FormatTable(tools []models.Tool) string {
	if len(tools) == 0 {
		return "No tools found.\n"
	}

	var b strings.Builder
	b.WriteString("\nTool Directory\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tURL\tTags\tAdded")
	fmt.Fprintln(w, strings.Repeat("─", 11)+"\t"+strings.Repeat("─", 20)+"\t"+strings.Repeat("─", 40)+"\t"+strings.Repeat("─", 20)+"\t"+strings.Repeat("─", 10))
	for _, t := range tools {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ShortenID(t.ID),
			Truncate(t.Name, 20),
			Truncate(t.URL, 40),
			Truncate(models.JoinTags(t.Tags), 20),
			t.Date,
		)
	}
	w.Flush()

	fmt.Fprintf(&b, "\nTotal: %d tool(s)\n", len(tools))
	return b.String()
}

// FormatSuccess formats the confirmation for an accepted submission. tool may
// be nil when the submitter did not return the stored entry.
func FormatSuccess(message string, tool *models.Tool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n✓ %s\n", message)
	if tool != nil {
		b.WriteString("\n")
		if tool.ID != uuid.Nil {
			fmt.Fprintf(&b, "  ID:    %s\n", ShortenID(tool.ID))
		}
		fmt.Fprintf(&b, "  Name:  %s\n", tool.Name)
		fmt.Fprintf(&b, "  URL:   %s\n", tool.URL)
		fmt.Fprintf(&b, "  Tags:  %s\n", models.JoinTags(tool.Tags))
		fmt.Fprintf(&b, "  Added: %s\n", tool.Date)
	}
	b.WriteString("\n")
	return b.String()
}

// FormatFieldErrors lists field errors in form order.
func FormatFieldErrors(errs validation.FieldErrors) string {
	var b strings.Builder
	for _, f := range models.Fields {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(&b, "  %s: %s\n", f.Label(), msg)
		}
	}
	return b.String()
}

// FormatError formats an error message consistently
func FormatError(err error) string {
	return fmt.Sprintf("❌ Error: %v\n", err)
}

// Write writes content to w, ignoring short writes.
func Write(w io.Writer, content string) {
	fmt.Fprint(w, content)
}
