package models

import (
	"time"

	"github.com/google/uuid"
)

// Field names a draft field. The string value doubles as the JSON key.
type Field string

const (
	FieldName        Field = "name"
	FieldURL         Field = "url"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldDate        Field = "date"
)

// Fields lists every draft field in display order.
var Fields = []Field{FieldName, FieldURL, FieldDescription, FieldTags, FieldDate}

// Label returns the human-readable label shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "App Name"
	case FieldURL:
		return "URL"
	case FieldDescription:
		return "What Does it Do?"
	case FieldTags:
		return "Tags"
	case FieldDate:
		return "Date Added"
	}
	return string(f)
}

// Draft is the in-progress, unsaved directory entry a user is filling in.
// Every field is kept as raw text until the draft is validated.
type Draft struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Date        string `json:"date"`
}

// Get returns the raw value of a field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldURL:
		return d.URL
	case FieldDescription:
		return d.Description
	case FieldTags:
		return d.Tags
	case FieldDate:
		return d.Date
	}
	return ""
}

// Set returns a copy of the draft with one field replaced.
func (d Draft) Set(f Field, value string) Draft {
	switch f {
	case FieldName:
		d.Name = value
	case FieldURL:
		d.URL = value
	case FieldDescription:
		d.Description = value
	case FieldTags:
		d.Tags = value
	case FieldDate:
		d.Date = value
	}
	return d
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Tool is a persisted directory entry.
type Tool struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	URL         string    `db:"url" json:"url"`
	Description string    `db:"description" json:"description"`
	Tags        []string  `db:"tags" json:"tags"`
	Date        string    `db:"date_added" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ToolCreate represents data for creating a new tool from a validated draft
type ToolCreate struct {
	Name        string
	URL         string
	Description string
	Tags        []string
	Date        string
}

// NewToolCreate converts a draft into the normalized create payload. The URL
// must already be normalized by the caller.
func NewToolCreate(d Draft, normalizedURL string) ToolCreate {
	return ToolCreate{
		Name:        trim(d.Name),
		URL:         normalizedURL,
		Description: trim(d.Description),
		Tags:        ParseTags(d.Tags),
		Date:        trim(d.Date),
	}
}
