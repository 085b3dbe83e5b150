package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tool-directory/pkg/models"
)

func validDraft() models.Draft {
	return models.Draft{
		Name:        "Ripgrep",
		URL:         "github.com/BurntSushi/ripgrep",
		Description: "Recursively searches directories for a regex",
		Tags:        "cli, search",
		Date:        "2024-05-01",
	}
}

func strategies() map[string]Validator {
	return map[string]Validator{"rules": Rules(), "schema": Schema()}
}

func TestValidate_ValidDraft(t *testing.T) {
	for name, v := range strategies() {
		t.Run(name, func(t *testing.T) {
			errs := v.Validate(validDraft())
			assert.True(t, errs.Valid())
			assert.Nil(t, errs)
		})
	}
}

func TestValidate_EmptyDraftFailsEveryField(t *testing.T) {
	want := FieldErrors{
		models.FieldName:        MsgNameRequired,
		models.FieldURL:         MsgInvalidURL,
		models.FieldDescription: MsgDescriptionRequired,
		models.FieldTags:        MsgTagsRequired,
		models.FieldDate:        MsgDateRequired,
	}
	for name, v := range strategies() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, v.Validate(models.Draft{}))
		})
	}
}

func TestValidate_URL(t *testing.T) {
	cases := []struct {
		url   string
		valid bool
	}{
		{"example.com", true},
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"  example.com  ", true},
		{"not a url", false},
		{"", false},
		{"https://", false},
	}
	for name, v := range strategies() {
		for _, tc := range cases {
			t.Run(name+"/"+tc.url, func(t *testing.T) {
				d := validDraft()
				d.URL = tc.url
				errs := v.Validate(d)
				if tc.valid {
					assert.NotContains(t, errs, models.FieldURL)
				} else {
					assert.Equal(t, MsgInvalidURL, errs[models.FieldURL])
				}
			})
		}
	}
}

func TestValidate_DescriptionLength(t *testing.T) {
	for name, v := range strategies() {
		t.Run(name, func(t *testing.T) {
			d := validDraft()

			d.Description = strings.Repeat("a", 9)
			assert.Equal(t, MsgDescriptionRequired, v.Validate(d)[models.FieldDescription])

			d.Description = strings.Repeat("a", 10)
			assert.NotContains(t, v.Validate(d), models.FieldDescription)

			// characters, not bytes
			d.Description = strings.Repeat("é", 10)
			assert.NotContains(t, v.Validate(d), models.FieldDescription)
		})
	}
}

func TestValidate_FieldsAreIndependent(t *testing.T) {
	for name, v := range strategies() {
		t.Run(name, func(t *testing.T) {
			d := validDraft()
			d.Name = "   "
			d.Tags = " , "
			errs := v.Validate(d)
			assert.Equal(t, FieldErrors{
				models.FieldName: MsgNameRequired,
				models.FieldTags: MsgTagsRequired,
			}, errs)
		})
	}
}

func TestStrategiesAgree(t *testing.T) {
	drafts := []models.Draft{
		{},
		validDraft(),
		{Name: "x", URL: "not a url", Description: "short", Tags: "a", Date: ""},
		{Name: "", URL: "example.com", Description: "0123456789", Tags: ",", Date: "2024-01-01"},
		{Name: "x", URL: "ftp://files.example.com", Description: "long enough text", Tags: "a,b", Date: "today"},
	}
	for i, d := range drafts {
		assert.Equal(t, Rules().Validate(d), Schema().Validate(d), "draft %d", i)
	}
}

func TestNormalizeURL(t *testing.T) {
	got, err := NormalizeURL(" example.com/tools ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/tools", got)

	got, err = NormalizeURL("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", got)

	_, err = NormalizeURL("")
	assert.EqualError(t, err, "URL is required")
}

func TestFieldErrors_First(t *testing.T) {
	errs := FieldErrors{
		models.FieldDate: MsgDateRequired,
		models.FieldURL:  MsgInvalidURL,
	}
	f, msg, ok := errs.First()
	require.True(t, ok)
	assert.Equal(t, models.FieldURL, f)
	assert.Equal(t, MsgInvalidURL, msg)

	_, _, ok = FieldErrors(nil).First()
	assert.False(t, ok)
}

func TestFieldErrors_MapRoundTrip(t *testing.T) {
	errs := FieldErrors{models.FieldName: MsgNameRequired}
	assert.Equal(t, errs, FromMap(errs.ToMap()))
	assert.Nil(t, FieldErrors(nil).ToMap())
}

func TestByName(t *testing.T) {
	_, ok := ByName("rules")
	assert.True(t, ok)
	_, ok = ByName("schema")
	assert.True(t, ok)
	_, ok = ByName("zod")
	assert.False(t, ok)
}
