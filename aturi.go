package atproto

import (
	"fmt"
	"strings"
)

// ParseATURI splits an at:// URI into its authority (DID or handle),
// collection NSID, and record key. Collection and rkey may be empty for
// shorter forms.
func ParseATURI(uri string) (string, string, string, error) {
	rest, ok := strings.CutPrefix(uri, "at://")
	if !ok {
		return "", "", "", fmt.Errorf("unsupported uri scheme")
	}

	parts := strings.SplitN(rest, "/", 3)
	if parts[0] == "" {
		return "", "", "", fmt.Errorf("missing authority")
	}

	authority := parts[0]
	collection := ""
	rkey := ""
	if len(parts) > 1 {
		collection = parts[1]
	}
	if len(parts) > 2 {
		rkey = parts[2]
	}

	return authority, collection, rkey, nil
}

// ComposeATURI builds an at:// URI from its parts.
func ComposeATURI(authority, collection, rkey string) string {
	uri := "at://" + authority
	if collection != "" {
		uri += "/" + collection
		if rkey != "" {
			uri += "/" + rkey
		}
	}
	return uri
}

// IsDID reports whether the identifier is a DID rather than a handle.
func IsDID(identifier string) bool {
	parts := strings.SplitN(identifier, ":", 3)
	return len(parts) == 3 && parts[0] == "did" && parts[1] != "" && parts[2] != ""
}
