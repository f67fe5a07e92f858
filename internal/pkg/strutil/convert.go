// Package strutil provides small string conversion helpers used for
// parsing query parameters.
package strutil

import "strconv"

// ConvertToInt converts a string to an int, returning 0 on failure.
func ConvertToInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
