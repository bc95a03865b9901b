package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQuantity converts a vendor quantity cell to an integer.
// Thousands separators and a zero fractional part ("1,200", "12.0") are accepted;
// negative values (backorder markers) clamp to zero.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("invalid quantity %q", raw)
		}
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("fractional quantity %q", raw)
		}
		n = int(f)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case int64:
		return v == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}
