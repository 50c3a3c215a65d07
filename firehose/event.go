// Package firehose consumes the Jetstream JSON event websocket and feeds
// decoded events to a caller-supplied handler.
package firehose

import (
	"encoding/json"

	atproto "github.com/mmattbtw/ATProtoKit"
)

// Event is one Jetstream message. Kind selects which detail member is
// populated; identity and account payloads stay opaque.
type Event struct {
	DID      string           `json:"did"`
	TimeUS   int64            `json:"time_us"`
	Kind     string           `json:"kind"`
	Commit   *Commit          `json:"commit,omitempty"`
	Identity *atproto.Unknown `json:"identity,omitempty"`
	Account  *atproto.Unknown `json:"account,omitempty"`
}

// Commit is a repo write. The record payload stays an Unknown: the stream
// carries every collection, and the subscriber has no business failing on
// ones this client has no types for. Callers match known collections via
// Record.Decode.
type Commit struct {
	Rev        string          `json:"rev"`
	Operation  string          `json:"operation"`
	Collection string          `json:"collection"`
	RKey       string          `json:"rkey"`
	Record     atproto.Unknown `json:"record,omitempty"`
	CID        string          `json:"cid"`
}

func parseEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}
