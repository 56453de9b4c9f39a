// Package canonical serializes JSON values into a deterministic compact
// form suitable for hashing.
//
// The canonical form follows the cross-language deterministic JSON rules
// used by the dstack tooling:
//   - mapping keys are sorted lexicographically at every nesting depth
//   - NaN and infinite numbers are replaced with null
//   - no insignificant whitespace ("," and ":" separators only)
//   - non-ASCII bytes are emitted literally, never \u-escaped
//
// The standard library encoder cannot produce this form: encoding/json
// escapes '<', '>', '&', U+2028 and U+2029 even with HTML escaping
// disabled, and every escaped byte changes the digest computed over the
// output. The writer here escapes exactly the quote, backslash, and C0
// control characters and nothing else.
package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ErrInvalidValueType reports a value outside the JSON value domain of
// null, booleans, numbers, strings, sequences, and string-keyed mappings.
var ErrInvalidValueType = errors.New("value outside the JSON value domain")

// Canonicalize serializes v into the canonical compact JSON form.
// Two values with the same structure produce byte-identical output
// regardless of mapping insertion order.
func Canonicalize(v any) (string, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		buf.Write(AppendString(nil, val))
	case json.Number:
		// Already a JSON number literal; emit verbatim so parsed
		// documents round-trip without reformatting.
		buf.WriteString(val.String())
	case float64:
		writeFloat(buf, val)
	case float32:
		writeFloat(buf, float64(val))
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int8:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int16:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case uint:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint8:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint16:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(val, 10))
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(AppendString(nil, k))
			buf.WriteByte(':')
			if err := writeValue(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", ErrInvalidValueType, v)
	}
	return nil
}

// writeFloat emits a float, mapping non-finite values to null since they
// have no canonical JSON representation.
func writeFloat(buf *bytes.Buffer, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

// AppendString appends s to dst as a quoted JSON string.
func AppendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	dst = appendEscaped(dst, s)
	return append(dst, '"')
}

// EscapeString returns the JSON-escaped form of s without the surrounding
// quotes, for embedding into a string-valued template slot.
func EscapeString(s string) string {
	return string(appendEscaped(nil, s))
}

// appendEscaped works on raw bytes so that multi-byte UTF-8 sequences
// pass through untouched. Only '"', '\\' and C0 control characters are
// escaped; DEL, U+2028/U+2029 and the HTML-sensitive characters stay
// literal to match the reference serializer byte for byte.
func appendEscaped(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c >= 0x20:
			dst = append(dst, c)
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, []byte(fmt.Sprintf(`\u%04x`, c))...)
		}
	}
	return dst
}
