// Package values converts loosely typed configuration values. Values come
// from TOML (int64, float64, bool, string), from the environment (always
// strings) or from code (any Go type), and every ConfigStore reads them
// through the same rules.
package values

import (
	"strconv"
	"strings"
	"time"
)

// String returns val when it is a string.
func String(val any) (string, bool) {
	s, ok := val.(string)
	return s, ok
}

// Int accepts Go and TOML integers and decimal strings. Floats are
// truncated.
func Int(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

// Bool accepts booleans and strings understood by strconv.ParseBool.
func Bool(val any) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	}
	return false, false
}

// Duration accepts time.Duration, Go duration strings ("750ms", "2s") and
// whole seconds given as numbers or numeric strings.
func Duration(val any) (time.Duration, bool) {
	switch v := val.(type) {
	case time.Duration:
		return v, true
	case string:
		v = strings.TrimSpace(v)
		if d, err := time.ParseDuration(v); err == nil {
			return d, true
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return time.Duration(n) * time.Second, true
	case int:
		return time.Duration(v) * time.Second, true
	case int64:
		return time.Duration(v) * time.Second, true
	case float64:
		return time.Duration(v * float64(time.Second)), true
	}
	return 0, false
}
