package util

import (
	"strconv"
)

// MustParseUint converts a path parameter to an unsigned integer,
// returning 0 when it does not parse.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseBoolQuery interprets an optional boolean query parameter; nil
// means the parameter was absent or malformed.
func ParseBoolQuery(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}
