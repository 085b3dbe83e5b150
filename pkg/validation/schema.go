package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tool-directory/pkg/models"
)

// draftSchema declares the rule for every field. The field tag carries the
// draft field name reported back in errors.
type draftSchema struct {
	Name        string `field:"name" validate:"required"`
	URL         string `field:"url" validate:"weburl"`
	Description string `field:"description" validate:"min=10"`
	Tags        string `field:"tags" validate:"tags"`
	Date        string `field:"date" validate:"required"`
}

type schema struct {
	v *validator.Validate
}

var defaultSchema = mustSchema()

// Schema returns the declarative validator.
func Schema() Validator {
	return defaultSchema
}

func mustSchema() *schema {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return sf.Tag.Get("field")
	})
	if err := v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		_, err := NormalizeURL(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("validation: register weburl: %v", err))
	}
	if err := v.RegisterValidation("tags", func(fl validator.FieldLevel) bool {
		return len(models.ParseTags(fl.Field().String())) > 0
	}); err != nil {
		panic(fmt.Sprintf("validation: register tags: %v", err))
	}
	return &schema{v: v}
}

func (s *schema) Validate(d models.Draft) FieldErrors {
	in := draftSchema{
		Name:        strings.TrimSpace(d.Name),
		URL:         d.URL,
		Description: strings.TrimSpace(d.Description),
		Tags:        d.Tags,
		Date:        strings.TrimSpace(d.Date),
	}

	err := s.v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a non-struct input.
		panic(fmt.Sprintf("validation: schema: %v", err))
	}

	var errs FieldErrors
	for _, fe := range verrs {
		errs.fail(models.Field(fe.Field()))
	}
	return errs
}
