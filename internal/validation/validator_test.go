package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/scripts/internal/errs"
)

var testRules = NewFieldRules(
	FieldRule{Field: "title", Rules: []Rule{NotEmpty()}},
	FieldRule{Field: "position", Rules: []Rule{NotEmpty()}},
	FieldRule{Field: "status", Rules: []Rule{NotEmpty(), {Tag: "oneof=draft active"}}},
)

func TestValidatorPasses(t *testing.T) {
	v := New().Validate(MapParams{"title": "A", "position": 1.0, "status": "active"}, testRules)

	assert.False(t, v.IsFailed())
	assert.Empty(t, v.ErrorsAsString())
	assert.NoError(t, v.Err())
}

func TestValidatorStringZeroIsNotEmpty(t *testing.T) {
	v := New().Validate(MapParams{"title": "0", "position": "0", "status": "active"}, testRules)

	assert.False(t, v.IsFailed())
}

func TestValidatorEmptyValues(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value any
	}{
		{"missing", nil},
		{"empty string", ""},
		{"blank string", "   "},
		{"zero", 0.0},
		{"json zero", json.Number("0")},
		{"false", false},
		{"empty list", []any{}},
		{"empty object", map[string]any{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params := MapParams{"position": "1", "status": "active"}
			if tc.value != nil {
				params["title"] = tc.value
			}

			v := New().Validate(params, testRules)

			require.True(t, v.IsFailed())
			assert.Equal(t, "title: title must not be empty", v.ErrorsAsString())
		})
	}
}

func TestValidatorErrorsAsStringOrder(t *testing.T) {
	v := New().Validate(MapParams{"status": ""}, testRules)

	// A blank status fails both of its rules.
	assert.Equal(t,
		"title: title must not be empty; position: position must not be empty; status: status must not be empty, status must be one of: draft active",
		v.ErrorsAsString(),
	)
	assert.Len(t, v.FieldErrors(), 4)
}

func TestValidatorAccumulatesAcrossCalls(t *testing.T) {
	rules := NewFieldRules(FieldRule{Field: "title", Rules: []Rule{NotEmpty()}})

	v := New()
	v.Validate(MapParams{}, rules)
	v.Validate(MapParams{}, rules)

	assert.Equal(t, "title: title must not be empty, title must not be empty", v.ErrorsAsString())
}

func TestValidatorErr(t *testing.T) {
	err := New().Validate(MapParams{}, testRules).Err()
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, errs.KindValidation, httpErr.Kind)
	assert.Contains(t, httpErr.Message, "title: title must not be empty")
}

func TestValidatorInapplicableTagFails(t *testing.T) {
	rules := NewFieldRules(FieldRule{Field: "meta", Rules: []Rule{{Tag: "email"}}})

	v := New().Validate(MapParams{"meta": map[string]any{"a": 1}}, rules)
	assert.True(t, v.IsFailed())
}

func TestFieldRulesAreCopied(t *testing.T) {
	rules := []Rule{NotEmpty()}
	fr := NewFieldRules(FieldRule{Field: "title", Rules: rules})
	rules[0] = Rule{Tag: "max=1"}

	for _, got := range fr.All() {
		assert.Equal(t, []Rule{NotEmpty()}, got)
	}
	assert.Equal(t, []string{"title"}, fr.Fields())
	assert.Equal(t, 1, fr.Len())
}
