package atproto

import "encoding/json"

// variant is one candidate shape of a polymorphic field. name identifies the
// candidate in diagnostics; typ is the "$type" literal identifying it on the
// wire, or "" for shapes that never carry a discriminant. decode must be
// strict: it fails unless every required field of the shape is present and
// well-typed.
type variant struct {
	name   string
	typ    string
	decode func([]byte) error
}

// decodeUnion resolves a polymorphic payload against an ordered, closed
// candidate list.
//
// When the payload carries a "$type" naming a declared candidate, that
// candidate is authoritative: it is decoded directly and its failure fails
// the union. Without a usable discriminant, candidates are tried strictly in
// declared order and the first success wins. The declared order is part of
// the contract: when two shapes could both accept a payload, the earlier
// (more specific) one must be listed first.
//
// Returns the index of the adopted candidate, or an UnrecognizedVariantError
// carrying the decode path when nothing matches.
func decodeUnion(data []byte, path string, candidates []variant) (int, error) {
	var probe struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Type != "" {
		for i, c := range candidates {
			if c.typ != "" && c.typ == probe.Type {
				if err := c.decode(data); err != nil {
					return -1, err
				}
				return i, nil
			}
		}
		return -1, &UnrecognizedVariantError{Path: path, Candidates: candidateNames(candidates)}
	}

	for i, c := range candidates {
		if err := c.decode(data); err == nil {
			return i, nil
		}
	}
	return -1, &UnrecognizedVariantError{Path: path, Candidates: candidateNames(candidates)}
}

func candidateNames(candidates []variant) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
