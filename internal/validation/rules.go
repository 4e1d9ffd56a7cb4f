package validation

import (
	"iter"
	"slices"
)

// Rule is a single predicate applied to a parameter value.
//
// Tag uses go-playground/validator syntax ("required", "max=255",
// "oneof=draft active"). Tags are applied through Validate.Var, so
// anything that works on a bare value works here.
type Rule struct {
	Tag string
}

// NotEmpty rejects nil, blank strings, zero numbers, false and empty
// collections.
//
// The string "0" is not empty: only the number 0 is.
func NotEmpty() Rule {
	return Rule{Tag: "required"}
}

// FieldRule binds an ordered list of rules to a parameter name.
type FieldRule struct {
	Field string
	Rules []Rule
}

// FieldRules is an immutable, ordered field -> rules mapping.
//
// Its fields are also the allow-list used by Project: nothing outside
// of it is ever persisted.
type FieldRules struct {
	fields []FieldRule
}

// NewFieldRules copies fields into a FieldRules value. Later changes to the
// arguments do not affect the returned value.
func NewFieldRules(fields ...FieldRule) FieldRules {
	cp := make([]FieldRule, len(fields))
	for i, f := range fields {
		cp[i] = FieldRule{Field: f.Field, Rules: slices.Clone(f.Rules)}
	}
	return FieldRules{fields: cp}
}

// Fields returns the field names in rule order.
func (r FieldRules) Fields() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Field
	}
	return names
}

// All iterates fields and their rules in rule order.
func (r FieldRules) All() iter.Seq2[string, []Rule] {
	return func(yield func(string, []Rule) bool) {
		for _, f := range r.fields {
			if !yield(f.Field, slices.Clone(f.Rules)) {
				return
			}
		}
	}
}

// Len is the number of fields.
func (r FieldRules) Len() int {
	return len(r.fields)
}
