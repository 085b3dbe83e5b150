package models

import (
	"strings"
	"time"
)

// DateLayout is the yyyy-MM-dd layout every picked date is stored in.
const DateLayout = "2006-01-02"

// FormatDate normalizes a calendar date to yyyy-MM-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTags splits a comma-separated tag string. Blank entries are dropped and
// duplicates (case-insensitive) keep their first spelling.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags is the inverse of ParseTags for display.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
