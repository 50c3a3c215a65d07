package atproto

import "testing"

func TestParseATURI(t *testing.T) {
	cases := []struct {
		in                          string
		authority, collection, rkey string
	}{
		{"at://did:plc:abc/app.bsky.feed.post/3kabc", "did:plc:abc", "app.bsky.feed.post", "3kabc"},
		{"at://alice.test/app.bsky.feed.generator/cool", "alice.test", "app.bsky.feed.generator", "cool"},
		{"at://did:plc:abc", "did:plc:abc", "", ""},
	}
	for _, tc := range cases {
		authority, collection, rkey, err := ParseATURI(tc.in)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.in, err)
		}
		if authority != tc.authority || collection != tc.collection || rkey != tc.rkey {
			t.Fatalf("parse %s = (%s, %s, %s)", tc.in, authority, collection, rkey)
		}
	}
}

func TestParseATURIRejectsOtherSchemes(t *testing.T) {
	for _, in := range []string{"https://example.com", "cc://foo/bar", "at://"} {
		if _, _, _, err := ParseATURI(in); err == nil {
			t.Fatalf("parse %s should fail", in)
		}
	}
}

func TestComposeATURI(t *testing.T) {
	uri := ComposeATURI("did:plc:abc", "app.bsky.feed.post", "3kabc")
	if uri != "at://did:plc:abc/app.bsky.feed.post/3kabc" {
		t.Fatalf("uri = %q", uri)
	}
	if got := ComposeATURI("did:plc:abc", "", ""); got != "at://did:plc:abc" {
		t.Fatalf("uri = %q", got)
	}
}

func TestIsDID(t *testing.T) {
	if !IsDID("did:plc:abc123") {
		t.Fatalf("did:plc:abc123 is a DID")
	}
	for _, s := range []string{"alice.test", "did:", "did:plc:", "plc:abc"} {
		if IsDID(s) {
			t.Fatalf("%s is not a DID", s)
		}
	}
}
