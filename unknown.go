package atproto

import (
	"bytes"
	"encoding/json"
)

// Unknown preserves a JSON value of unspecified shape through decode and
// re-encode without loss. It is the escape hatch for fields the schema leaves
// implementation-defined: record payloads inside views, feed reasons, facet
// features, and anything a newer server sends that this client has no type
// for yet.
//
// Decoding never fails for valid JSON; the raw bytes are kept verbatim and
// re-emitted on marshal.
type Unknown struct {
	raw json.RawMessage
}

// NewUnknown builds an Unknown from any JSON-marshalable Go value.
func NewUnknown(v any) (Unknown, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Unknown{}, err
	}
	return Unknown{raw: b}, nil
}

// IsZero reports whether no value was ever decoded into u.
func (u Unknown) IsZero() bool { return len(u.raw) == 0 }

// Raw returns the preserved bytes. The caller must not modify them.
func (u Unknown) Raw() json.RawMessage { return u.raw }

// Value decodes the preserved payload into generic Go values. Numbers come
// back as json.Number so that large integers survive a round trip through
// Value and NewUnknown.
func (u Unknown) Value() (any, error) {
	if len(u.raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(u.raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode unmarshals the preserved payload into a concrete type chosen by the
// caller. This is how calling code pattern-matches an Unknown once it knows
// (usually via TypeField) what the payload is.
func (u Unknown) Decode(dst any) error {
	if len(u.raw) == 0 {
		return json.Unmarshal([]byte("null"), dst)
	}
	return json.Unmarshal(u.raw, dst)
}

// TypeField returns the "$type" member when the payload is an object carrying
// one, and "" otherwise.
func (u Unknown) TypeField() string {
	var probe struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(u.raw, &probe); err != nil {
		return ""
	}
	return probe.Type
}

func (u Unknown) MarshalJSON() ([]byte, error) {
	if len(u.raw) == 0 {
		return []byte("null"), nil
	}
	return u.raw, nil
}

func (u *Unknown) UnmarshalJSON(data []byte) error {
	u.raw = append(u.raw[:0], data...)
	return nil
}
