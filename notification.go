package atproto

import "encoding/json"

// NotificationReason is the closed set of events the notification service
// reports. The set is part of the wire contract: a reason outside it fails
// decode rather than being passed through.
type NotificationReason string

const (
	ReasonLike              NotificationReason = "like"
	ReasonRepost            NotificationReason = "repost"
	ReasonFollow            NotificationReason = "follow"
	ReasonMention           NotificationReason = "mention"
	ReasonReply             NotificationReason = "reply"
	ReasonQuote             NotificationReason = "quote"
	ReasonStarterpackJoined NotificationReason = "starterpack-joined"
)

func (r *NotificationReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &FormatError{Path: "reason", Value: string(data)}
	}
	switch NotificationReason(s) {
	case ReasonLike, ReasonRepost, ReasonFollow, ReasonMention, ReasonReply, ReasonQuote, ReasonStarterpackJoined:
		*r = NotificationReason(s)
		return nil
	}
	return &FormatError{Path: "reason", Value: s}
}

// Notification is one entry from app.bsky.notification.listNotifications.
// The subject record is unresolved and stays opaque.
type Notification struct {
	URI           string             `json:"uri"`
	CID           string             `json:"cid"`
	Author        ProfileView        `json:"author"`
	Reason        NotificationReason `json:"reason"`
	ReasonSubject *string            `json:"reasonSubject,omitempty"`
	Record        Unknown            `json:"record"`
	IsRead        bool               `json:"isRead"`
	IndexedAt     Timestamp          `json:"indexedAt"`
	Labels        []Unknown          `json:"labels,omitempty"`
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	type alias Notification
	var a alias
	if err := unmarshalStrict(data, &a, "notification",
		"uri", "cid", "author", "reason", "record", "isRead", "indexedAt"); err != nil {
		return err
	}
	*n = Notification(a)
	return nil
}

// NotificationsPage is one page of listNotifications.
type NotificationsPage struct {
	Cursor        *string        `json:"cursor,omitempty"`
	Notifications []Notification `json:"notifications"`
	SeenAt        *Timestamp     `json:"seenAt,omitempty"`
}

func (p *NotificationsPage) UnmarshalJSON(data []byte) error {
	type alias NotificationsPage
	var a alias
	if err := unmarshalStrict(data, &a, "notifications", "notifications"); err != nil {
		return err
	}
	*p = NotificationsPage(a)
	return nil
}
