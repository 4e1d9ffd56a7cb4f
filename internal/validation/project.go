package validation

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/deppfellow/scripts/internal/errs"
)

// Project copies exactly the fields named by rules out of params.
//
// Scalars are normalized to strings (JSON numbers and booleans included);
// a missing field becomes nil. Objects and arrays are rejected with a 400.
func Project(rules FieldRules, params Params) (map[string]any, error) {
	out := make(map[string]any, rules.Len())

	for _, field := range rules.Fields() {
		raw := params.Param(field)
		if raw == nil {
			out[field] = nil
			continue
		}

		switch raw.(type) {
		case map[string]any, []any:
			return nil, errs.NewBadRequestError(fmt.Sprintf("Invalid value for field: %s", field), true, nil, nil)
		}

		value, err := cast.ToStringE(raw)
		if err != nil {
			return nil, errs.NewBadRequestError(fmt.Sprintf("Invalid value for field: %s", field), true, nil, nil).WithCause(err)
		}
		out[field] = value
	}

	return out, nil
}
