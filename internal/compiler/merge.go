package compiler

// Merge returns a new map holding every key of base, with each key present
// in override replaced by the override's value in full. Nested maps are not
// combined: a partial object in override masks the whole base object.
func Merge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// ValueOrDefault returns v, or def when v is absent (nil).
func ValueOrDefault(v, def any) any {
	if v == nil {
		return def
	}
	return v
}
