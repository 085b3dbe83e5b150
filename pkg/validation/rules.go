package validation

import (
	"strings"
	"unicode/utf8"

	"tool-directory/pkg/models"
)

type rules struct{}

// Rules returns the hand-written per-field validator.
func Rules() Validator {
	return rules{}
}

func (rules) Validate(d models.Draft) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(d.Name) == "" {
		errs.fail(models.FieldName)
	}
	if _, err := NormalizeURL(d.URL); err != nil {
		errs.fail(models.FieldURL)
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Description)) < MinDescriptionLength {
		errs.fail(models.FieldDescription)
	}
	if len(models.ParseTags(d.Tags)) == 0 {
		errs.fail(models.FieldTags)
	}
	if strings.TrimSpace(d.Date) == "" {
		errs.fail(models.FieldDate)
	}

	return errs
}
