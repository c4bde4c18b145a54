package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Marshal canonicalizes v (any JSON-equivalent Go value: nil, bool, string,
// int-family, float-family, json.Number, map[string]any, []any, or a type
// implementing json.Marshaler) and returns the single canonical byte
// sequence that is the pre-image for every signature in this system.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CanonicalizeJSON parses raw JSON bytes and re-emits them in canonical
// form. It is the entry point used when the pre-image is assembled from a
// JSON document rather than from native Go structures (for example,
// canonicalizing a JWT payload decoded off the wire).
func CanonicalizeJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return Marshal(v)
}

// MarshalStruct canonicalizes a Go struct (or any value) by first routing it
// through encoding/json (so struct tags, omitempty, and MarshalJSON
// implementations are honored) and then canonicalizing the result. This is
// the path used for CPOE credential subjects, receipts, and checkpoints,
// all of which are defined as tagged structs.
func MarshalStruct(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canon: marshaling struct: %w", err)
	}
	return CanonicalizeJSON(raw)
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		return encodeString(buf, t)
	case json.Number:
		return encodeNumber(buf, t)
	case float32, float64:
		return ErrFloatNotAllowed
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		buf.WriteString(fmt.Sprintf("%d", t))
		return nil
	case map[string]any:
		return encodeObject(buf, t)
	case []any:
		return encodeArray(buf, t)
	case json.RawMessage:
		canonical, err := CanonicalizeJSON(t)
		if err != nil {
			return err
		}
		buf.Write(canonical)
		return nil
	default:
		// Fall back through encoding/json for anything else that knows how
		// to marshal itself (structs, json.Marshaler implementers); the
		// result is then re-parsed and re-emitted canonically so struct
		// field order never leaks into the signed form.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedType, err)
		}
		canonical, err := CanonicalizeJSON(raw)
		if err != nil {
			return err
		}
		buf.Write(canonical)
		return nil
	}
}

func encodeObject(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encodeValue(buf, m[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, a []any) error {
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// encodeString escapes s the way encoding/json does for a map key or
// string value, reusing its escaping table by delegating to json.Marshal
// on a single string. This keeps escaping rules (including the "<", ">",
// "&" HTML-safe escapes which json.Marshal applies by default) consistent
// without hand maintaining a second escaper; canon always decodes through
// its own deterministic encodeValue afterward, so no insignificant
// whitespace from json.Marshal survives into the final byte sequence.
func encodeString(buf *bytes.Buffer, s string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("canon: encoding string: %w", err)
	}
	buf.Write(raw)
	return nil
}

// encodeNumber validates that n has no fractional or exponent component and
// re-emits it in shortest decimal form (no leading zeros, no trailing
// ".0").
func encodeNumber(buf *bytes.Buffer, n json.Number) error {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		buf.WriteString(strconv.FormatUint(u, 10))
		return nil
	}
	// Anything requiring a decimal point or exponent to represent is a
	// float by definition of json.Number's grammar at this point.
	return ErrFloatNotAllowed
}
