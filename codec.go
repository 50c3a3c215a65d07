package atproto

import (
	"bytes"
	"encoding/json"
)

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

// unmarshalStrict decodes a JSON object into dst after verifying every
// required member is present and non-null. Violations fail with a
// path-qualified RequiredFieldError; no partial result is ever produced.
// Wire names are fixed by the struct's json tags, never derived.
func unmarshalStrict(data []byte, dst any, path string, required ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &RequiredFieldError{Path: path}
	}
	for _, name := range required {
		raw, ok := fields[name]
		if !ok || bytes.Equal(raw, []byte("null")) {
			return &RequiredFieldError{Path: joinPath(path, name)}
		}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return qualifyDecodeError(err, path, required)
	}
	return nil
}

// unmarshalTyped is unmarshalStrict plus the discriminant guard: when the
// object carries a "$type" member it must equal want.
func unmarshalTyped(data []byte, dst any, path, want string, required ...string) error {
	var probe struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Type != "" && probe.Type != want {
		return &FormatError{Path: joinPath(path, "$type"), Value: probe.Type}
	}
	return unmarshalStrict(data, dst, path, required...)
}

// qualifyDecodeError maps encoding/json failures onto the error taxonomy. A
// type mismatch on a declared-required member is a RequiredFieldError; any
// other mismatch is a FormatError. Errors already belonging to the taxonomy
// (raised by a nested UnmarshalJSON) pass through untouched.
func qualifyDecodeError(err error, path string, required []string) error {
	switch err.(type) {
	case *RequiredFieldError, *FormatError, *UnrecognizedVariantError:
		return err
	}
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		for _, name := range required {
			if typeErr.Field == name {
				return &RequiredFieldError{Path: joinPath(path, name)}
			}
		}
		return &FormatError{Path: joinPath(path, typeErr.Field), Value: typeErr.Value}
	}
	return err
}

// marshalTyped serializes v and injects the fixed "$type" literal as the
// first member. The discriminant is a constant of the record type and is
// never caller-settable.
func marshalTyped(v any, typ string) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	inject := []byte(`"$type":` + string(mustJSONString(typ)))
	if bytes.Equal(b, []byte("{}")) {
		return append(append([]byte("{"), inject...), '}'), nil
	}
	out := append([]byte("{"), inject...)
	out = append(out, ',')
	out = append(out, b[1:]...)
	return out, nil
}

func mustJSONString(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}
