package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToString renders a decoded JSON value as raw staging text.
// nil becomes the empty string and whole floats are printed without exponent.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IntString renders an optional integer as raw staging text.
func IntString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Int64String renders an optional 64-bit integer as raw staging text.
func Int64String(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// ParseInt64 casts raw staging text to an integer.
// Empty or unparsable text yields nil. Whole decimals such as "12.0" are accepted.
func ParseInt64(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	i := int64(f)
	return &i
}

// ParseInt is ParseInt64 narrowed to int.
func ParseInt(s string) *int {
	v := ParseInt64(s)
	if v == nil || *v > math.MaxInt32 || *v < math.MinInt32 {
		return nil
	}
	i := int(*v)
	return &i
}

// StringPtr returns nil for empty text.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
