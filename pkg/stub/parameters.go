package stub

// Parameters carries the free-form configuration attached to a per-stub
// extension invocation. Values come from JSON or YAML mapping files, so
// numbers may arrive as float64 or int depending on the decoder.
type Parameters map[string]any

// EmptyParameters returns a non-nil empty parameter set.
// Global extension invocations always receive this.
func EmptyParameters() Parameters {
	return Parameters{}
}

// IsEmpty reports whether the parameter set has no entries.
func (p Parameters) IsEmpty() bool {
	return len(p) == 0
}

// String returns the string value for key, or def if the key is absent
// or holds a non-string value.
func (p Parameters) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Int returns the integer value for key, accepting int and float64
// representations, or def if the key is absent or not numeric.
func (p Parameters) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Bool returns the boolean value for key, or def if the key is absent
// or holds a non-boolean value.
func (p Parameters) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}
