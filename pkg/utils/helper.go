package utils

import (
	"strconv"
)

// ParseUint converts a string to uint64 with a default value.
func ParseUint(value string, defaultValue uint64) uint64 {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return result
}
