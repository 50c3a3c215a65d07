package atproto

import (
	"encoding/json"
	"reflect"
	"testing"
)

func structurallyEqual(t *testing.T, a, b []byte) bool {
	t.Helper()
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		t.Fatalf("unmarshal %s: %v", a, err)
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	return reflect.DeepEqual(va, vb)
}

func TestUnknownRoundTrip(t *testing.T) {
	inputs := []string{
		`{"a":1,"b":[true,null,"x"],"c":{"d":2.5}}`,
		`[1,2,3]`,
		`"just a string"`,
		`42`,
		`9007199254740993`,
		`true`,
		`null`,
		`{"$type":"com.example.custom","payload":{"deep":{"deeper":[{}]}}}`,
	}

	for _, in := range inputs {
		var u Unknown
		if err := json.Unmarshal([]byte(in), &u); err != nil {
			t.Fatalf("decode %s: %v", in, err)
		}
		out, err := json.Marshal(u)
		if err != nil {
			t.Fatalf("encode %s: %v", in, err)
		}
		if !structurallyEqual(t, []byte(in), out) {
			t.Fatalf("round trip changed %s into %s", in, out)
		}
	}
}

func TestUnknownSurvivesSiblingMutation(t *testing.T) {
	in := `{"uri":"at://did:plc:abc/app.bsky.feed.post/1","cid":"bafy1","author":{"did":"did:plc:abc","handle":"alice.test"},"record":{"custom":[1,2,{"k":9007199254740993}]},"indexedAt":"2024-05-01T10:00:00.000Z"}`

	var view PostView
	if err := json.Unmarshal([]byte(in), &view); err != nil {
		t.Fatalf("decode post view: %v", err)
	}

	view.CID = "bafy2"
	out, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("encode post view: %v", err)
	}

	var echoed struct {
		CID    string          `json:"cid"`
		Record json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal(out, &echoed); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if echoed.CID != "bafy2" {
		t.Fatalf("mutation lost: cid = %s", echoed.CID)
	}
	if !structurallyEqual(t, []byte(`{"custom":[1,2,{"k":9007199254740993}]}`), echoed.Record) {
		t.Fatalf("opaque record changed: %s", echoed.Record)
	}
}

func TestUnknownValueUsesNumbers(t *testing.T) {
	var u Unknown
	if err := json.Unmarshal([]byte(`{"n":9007199254740993}`), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	v, err := u.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	n := v.(map[string]any)["n"].(json.Number)
	if n.String() != "9007199254740993" {
		t.Fatalf("large integer coerced: %s", n)
	}
}

func TestUnknownTypeField(t *testing.T) {
	var u Unknown
	if err := json.Unmarshal([]byte(`{"$type":"app.bsky.feed.post","text":"hi"}`), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := u.TypeField(); got != "app.bsky.feed.post" {
		t.Fatalf("type field = %q", got)
	}

	var scalar Unknown
	if err := json.Unmarshal([]byte(`"plain"`), &scalar); err != nil {
		t.Fatalf("decode scalar: %v", err)
	}
	if got := scalar.TypeField(); got != "" {
		t.Fatalf("scalar type field = %q", got)
	}
}

func TestUnknownDecodeIntoConcrete(t *testing.T) {
	var u Unknown
	if err := json.Unmarshal([]byte(`{"$type":"app.bsky.feed.post","text":"hi","createdAt":"2024-05-01T10:00:00.000Z"}`), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var post PostRecord
	if err := u.Decode(&post); err != nil {
		t.Fatalf("decode into post: %v", err)
	}
	if post.Text != "hi" {
		t.Fatalf("text = %q", post.Text)
	}
}
