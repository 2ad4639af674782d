// Package config holds helpers shared by the configuration store adapters.
package config

// Conversions take the (value, found) pair returned by ConfigStore.Get and
// yield the zero value when the key is missing or has another type.
// TOML decodes integers as int64 and distinguishes 1 from 1.0, so numeric
// conversions accept every integer and float width a store may hold.

// AsString returns v as a string.
func AsString(v any, ok bool) string {
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// AsInt returns v as an int. Floats are not ints.
func AsInt(v any, ok bool) int {
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

// AsFloat returns v as a float64.
func AsFloat(v any, ok bool) float64 {
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// AsBool returns v as a bool.
func AsBool(v any, ok bool) bool {
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
