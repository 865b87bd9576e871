package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// JSON returns the compact JSON encoding of v without HTML escaping.
func JSON(v any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(Normalize(v)); err != nil {
		return "", err
	}

	return string(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})), nil
}

// Normalize returns v with every nested slice, array, and map converted to
// []any and map[string]any. Map keys are converted with [fmt.Sprint].
// Scalars and structs are returned unchanged.
func Normalize(v any) any {
	switch c := v.(type) {
	case nil, bool, string, int, int64, float64:
		return v
	case []any:
		out := make([]any, len(c))
		for i, e := range c {
			out[i] = Normalize(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, e := range c {
			out[k] = Normalize(e)
		}

		return out
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = Normalize(rv.Index(i).Interface())
		}

		return out

	case reflect.Map:
		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}

		return out

	default:
		return v
	}
}
