package validation

import (
	"fmt"
	"reflect"
	"strings"
)

// splitTag separates "max=255" into ("max", "255").
func splitTag(tag string) (string, string) {
	name, param, _ := strings.Cut(tag, "=")
	return name, param
}

// message converts a failed tag into a user-friendly message.
//
// Messages are prefixed with the field name, so they read on their own:
// "title must not be empty".
func message(field, tag string, kind reflect.Kind) string {
	name, param := splitTag(tag)

	var msg string
	switch name {
	case "required":
		msg = "must not be empty"

	case "min":
		// min means minimum length for strings and minimum value for numbers.
		if kind == reflect.String {
			msg = fmt.Sprintf("must be at least %s characters", param)
		} else {
			msg = fmt.Sprintf("must be at least %s", param)
		}

	case "max":
		if kind == reflect.String {
			msg = fmt.Sprintf("must not exceed %s characters", param)
		} else {
			msg = fmt.Sprintf("must not exceed %s", param)
		}

	case "oneof":
		msg = fmt.Sprintf("must be one of: %s", param)

	case "numeric":
		msg = "must be numeric"

	default:
		// Fallback for tags not explicitly handled above.
		if param != "" {
			msg = fmt.Sprintf("failed %s:%s", name, param)
		} else {
			msg = fmt.Sprintf("failed %s", name)
		}
	}

	return field + " " + msg
}
