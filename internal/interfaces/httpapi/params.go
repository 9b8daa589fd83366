package httpapi

import "strconv"

// Query values that fail to parse as an int fall back to this.
const defaultPageParam = 1

func parseIntParam(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultPageParam
	}
	return value
}
