// Package utils
package utils

import "strconv"

// StrToInt parses str as a base-10 integer and falls back to defaultValue
// when the string is not a valid integer.
func StrToInt(str string, defaultValue int) int {
	if value, err := strconv.Atoi(str); err == nil {
		return value
	}
	return defaultValue
}
