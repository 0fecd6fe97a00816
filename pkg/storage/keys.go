package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

// ValueKey encodes a document value as a comparable index key. Values are
// normalized first: numbers become float64, strings are lower-cased and
// map keys are sorted, so equal-by-ValuesMatch scalars share a key.
func ValueKey(value interface{}) string {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(normalize(value)); err != nil {
		// Values msgpack cannot encode (channels, funcs) still need a stable key.
		return fmt.Sprintf("%T:%v", value, value)
	}
	return buf.String()
}

// FieldKey returns a key function filing documents by the value of field.
// Documents without the field are filed under the nil key.
func FieldKey(field string) func(domain.Document) string {
	return func(doc domain.Document) string {
		return ValueKey(doc[field])
	}
}

// FieldsKey returns a key function filing documents by the ordered tuple
// of the given fields.
func FieldsKey(fields ...string) func(domain.Document) string {
	return func(doc domain.Document) string {
		values := make([]interface{}, len(fields))
		for i, field := range fields {
			values[i] = doc[field]
		}
		return ValueKey(values)
	}
}

// PresentFieldKeys is FieldKey for multi-key indexes: documents without
// the field are left out of the index entirely.
func PresentFieldKeys(field string) func(domain.Document) []string {
	return func(doc domain.Document) []string {
		value, ok := doc[field]
		if !ok {
			return nil
		}
		return []string{ValueKey(value)}
	}
}

func normalize(value interface{}) interface{} {
	if f, ok := ToFloat64(value); ok {
		return f
	}
	switch v := value.(type) {
	case string:
		return strings.ToLower(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = normalize(elem)
		}
		return out
	case map[string]interface{}:
		return normalizeMap(v)
	case domain.Document:
		return normalizeMap(v)
	default:
		return v
	}
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, elem := range m {
		out[k] = normalize(elem)
	}
	return out
}
