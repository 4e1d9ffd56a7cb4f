package validation

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/scripts/internal/errs"
)

// validate is shared by all Validators; validator.Validate is safe for
// concurrent use and caches parsed tags.
var validate = validator.New()

// Validator applies FieldRules to request parameters and accumulates
// per-field error messages.
//
// Errors are NOT reset between Validate calls: use one Validator per request.
type Validator struct {
	errors map[string][]string
	order  []string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{errors: make(map[string][]string)}
}

// Validate applies every rule of every field to params.Param(field), in
// rule order. Failures are recorded, never returned.
func (v *Validator) Validate(params Params, rules FieldRules) *Validator {
	for field, fieldRules := range rules.All() {
		value := normalize(params.Param(field))

		for _, rule := range fieldRules {
			if ok, kind := check(value, rule); !ok {
				v.add(field, message(field, rule.Tag, kind))
			}
		}
	}
	return v
}

// IsFailed reports whether any field has at least one error.
func (v *Validator) IsFailed() bool {
	return len(v.order) > 0
}

// ErrorsAsString renders "field: msg1, msg2; field2: msg3" in the order
// fields first failed.
func (v *Validator) ErrorsAsString() string {
	parts := make([]string, 0, len(v.order))
	for _, field := range v.order {
		parts = append(parts, field+": "+strings.Join(v.errors[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// FieldErrors flattens the accumulated messages into errs.FieldError values.
func (v *Validator) FieldErrors() []errs.FieldError {
	var out []errs.FieldError
	for _, field := range v.order {
		for _, msg := range v.errors[field] {
			out = append(out, errs.FieldError{Field: field, Error: msg})
		}
	}
	return out
}

// Err returns a 422 validation error when the Validator failed, nil otherwise.
func (v *Validator) Err() error {
	if !v.IsFailed() {
		return nil
	}
	return errs.NewValidationError(v.ErrorsAsString(), v.FieldErrors())
}

func (v *Validator) add(field, msg string) {
	if _, seen := v.errors[field]; !seen {
		v.order = append(v.order, field)
	}
	v.errors[field] = append(v.errors[field], msg)
}

// normalize maps values that are "empty" but not zero for validator
// (blank strings, empty collections) to their empty form. JSON numbers are
// validated as numbers.
func normalize(value any) any {
	switch val := value.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		if len(val) == 0 {
			return nil
		}
	case map[string]any:
		if len(val) == 0 {
			return nil
		}
	}
	return value
}

// check applies a single rule. A missing (nil) value only fails rules that
// require presence; every other tag treats it as omitted.
func check(value any, rule Rule) (bool, reflect.Kind) {
	if value == nil {
		name, _ := splitTag(rule.Tag)
		return !strings.HasPrefix(name, "required"), reflect.Invalid
	}

	kind := reflect.TypeOf(value).Kind()

	// validator panics on tags that do not apply to the value's type
	// (e.g. "max" on a map); treat those as failures.
	ok := func() (ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		return validate.Var(value, rule.Tag) == nil
	}()

	return ok, kind
}
