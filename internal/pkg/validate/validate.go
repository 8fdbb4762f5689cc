package validate

import "strings"

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// OneOfFold reports whether value matches one of allowed, ignoring case.
func OneOfFold(value string, allowed ...string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(value, candidate) {
			return true
		}
	}
	return false
}

func NonNegative(value *int) bool {
	return value == nil || *value >= 0
}

func Positive(value *int) bool {
	return value == nil || *value > 0
}
