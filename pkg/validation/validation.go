// Package validation checks a submission draft and reports every field that
// fails its rule. Two interchangeable strategies are provided: Rules, a set of
// hand-written per-field checks, and Schema, a declarative struct-tag schema
// evaluated by go-playground/validator. Both produce identical results.
package validation

import (
	"tool-directory/pkg/models"
)

// Messages shown next to a failing field.
const (
	MsgNameRequired        = "Name is required"
	MsgInvalidURL          = "Please enter a valid URL"
	MsgDescriptionRequired = "Description is required"
	MsgTagsRequired        = "Tags are required"
	MsgDateRequired        = "Date is required"
)

// MinDescriptionLength is the minimum description length in characters.
const MinDescriptionLength = 10

var messages = map[models.Field]string{
	models.FieldName:        MsgNameRequired,
	models.FieldURL:         MsgInvalidURL,
	models.FieldDescription: MsgDescriptionRequired,
	models.FieldTags:        MsgTagsRequired,
	models.FieldDate:        MsgDateRequired,
}

// Message returns the error message for a failing field.
func Message(f models.Field) string {
	return messages[f]
}

// FieldErrors maps a field to its error message. Fields absent from the map
// are valid. A nil FieldErrors means the whole draft is valid.
type FieldErrors map[models.Field]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// First returns the first failing field in display order.
func (e FieldErrors) First() (models.Field, string, bool) {
	for _, f := range models.Fields {
		if msg, ok := e[f]; ok {
			return f, msg, true
		}
	}
	return "", "", false
}

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	if len(e) == 0 {
		return nil
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ToMap converts to plain string keys for JSON responses.
func (e FieldErrors) ToMap() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[string(k)] = v
	}
	return out
}

// FromMap is the inverse of ToMap. Unknown keys are kept as-is.
func FromMap(m map[string]string) FieldErrors {
	if len(m) == 0 {
		return nil
	}
	out := make(FieldErrors, len(m))
	for k, v := range m {
		out[models.Field(k)] = v
	}
	return out
}

func (e *FieldErrors) fail(f models.Field) {
	if *e == nil {
		*e = make(FieldErrors)
	}
	(*e)[f] = messages[f]
}

// Validator maps a draft to its field errors.
type Validator interface {
	Validate(d models.Draft) FieldErrors
}

// ByName returns the strategy registered under name ("rules" or "schema").
func ByName(name string) (Validator, bool) {
	switch name {
	case "rules":
		return Rules(), true
	case "schema", "":
		return Schema(), true
	}
	return nil, false
}
