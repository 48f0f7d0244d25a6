package docstore

import "time"

// Field accessors tolerate missing keys and mismatched types by returning the
// zero value, so decoders can apply documented defaults in one place.

func String(doc Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func Bool(doc Document, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func Int(doc Document, key string) int {
	switch v := doc[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// Strings returns the string elements of an array field, skipping anything
// that is not a string.
func Strings(doc Document, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Object returns a nested object field and whether it was present.
func Object(doc Document, key string) (Document, bool) {
	switch v := doc[key].(type) {
	case map[string]any:
		return Document(v), true
	case Document:
		return v, true
	}
	return nil, false
}

// Time parses a timestamp field written by TimeValue. A missing or malformed
// value yields the zero time.
func Time(doc Document, key string) time.Time {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// TimeValue is the stored representation of a timestamp.
func TimeValue(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
