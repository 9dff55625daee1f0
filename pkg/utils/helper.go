package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return result
}

// ClampLimit bounds a page size into [1, max], falling back to def.
func ClampLimit(value string, def, max int) int {
	limit := ParseInt(value, def)
	if limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ClampOffset bounds an offset to be non-negative.
func ClampOffset(value string) int {
	offset := ParseInt(value, 0)
	if offset < 0 {
		return 0
	}
	return offset
}
