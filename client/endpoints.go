package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/pkg/errors"

	atproto "github.com/mmattbtw/ATProtoKit"
)

var errNoSession = errors.New("no session: authenticated endpoint")

// CreateSession exchanges an identifier (handle or DID) and an app password
// for a bearer session. The result is returned to the caller, who owns its
// storage and refresh; pass it back via WithSession or SetSession.
func (c *Client) CreateSession(ctx context.Context, identifier, password string) (*Session, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	s, err := procedure[Session](ctx, c, "com.atproto.server.createSession", body)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ResolveHandle resolves a handle to its DID. Results are cached when a
// store is configured: handles change rarely and this lookup fronts most
// other calls.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (string, error) {
	cacheKey := "handle:" + handle
	if c.store != nil {
		if b, found := c.store.Get(ctx, cacheKey); found {
			return string(b), nil
		}
	}

	type resolved struct {
		DID string `json:"did"`
	}
	out, err := query[resolved](ctx, c, "com.atproto.identity.resolveHandle", []Param{
		{Name: "handle", Value: handle},
	})
	if err != nil {
		return "", err
	}

	if c.store != nil {
		c.store.Set(ctx, cacheKey, []byte(out.DID), cacheTTL)
	}
	return out.DID, nil
}

// GetProfile fetches the detailed profile for an actor (handle or DID),
// read-through cached like ResolveHandle.
func (c *Client) GetProfile(ctx context.Context, actor string) (atproto.ProfileViewDetailed, error) {
	cacheKey := "profile:" + actor
	if c.store != nil {
		if b, found := c.store.Get(ctx, cacheKey); found {
			var p atproto.ProfileViewDetailed
			if err := json.Unmarshal(b, &p); err == nil {
				return p, nil
			}
			c.logger.Debug("dropping undecodable cache entry",
				slog.String("key", cacheKey),
				slog.String("module", "client"),
			)
		}
	}

	p, err := query[atproto.ProfileViewDetailed](ctx, c, "app.bsky.actor.getProfile", []Param{
		{Name: "actor", Value: actor},
	})
	if err != nil {
		return atproto.ProfileViewDetailed{}, err
	}

	if c.store != nil {
		if b, err := json.Marshal(p); err == nil {
			c.store.Set(ctx, cacheKey, b, cacheTTL)
		}
	}
	return p, nil
}

// TimelineRequest selects a page of the session account's home timeline.
// Zero values are omitted from the query string.
type TimelineRequest struct {
	Algorithm string
	Limit     int
	Cursor    string
}

// GetTimeline fetches one page of the home timeline. Limit is clamped into
// [1, 100].
func (c *Client) GetTimeline(ctx context.Context, req TimelineRequest) (atproto.TimelinePage, error) {
	if c.session == nil {
		return atproto.TimelinePage{}, errNoSession
	}

	var params []Param
	if req.Algorithm != "" {
		params = append(params, Param{Name: "algorithm", Value: req.Algorithm})
	}
	if req.Limit != 0 {
		params = append(params, Param{Name: "limit", Value: strconv.Itoa(clampLimit(req.Limit, 1, 100))})
	}
	if req.Cursor != "" {
		params = append(params, Param{Name: "cursor", Value: req.Cursor})
	}

	return query[atproto.TimelinePage](ctx, c, "app.bsky.feed.getTimeline", params)
}

// GetPosts hydrates up to 25 posts by URI. Extra URIs beyond the endpoint
// cap are dropped, mirroring the clamp-not-reject treatment of limits.
func (c *Client) GetPosts(ctx context.Context, uris []string) (atproto.PostsPage, error) {
	if len(uris) > 25 {
		uris = uris[:25]
	}
	params := make([]Param, 0, len(uris))
	for _, uri := range uris {
		params = append(params, Param{Name: "uris", Value: uri})
	}
	return query[atproto.PostsPage](ctx, c, "app.bsky.feed.getPosts", params)
}

// ListNotifications fetches one page of notifications for the session
// account. Limit is clamped into [1, 100].
func (c *Client) ListNotifications(ctx context.Context, limit int, cursor string) (atproto.NotificationsPage, error) {
	if c.session == nil {
		return atproto.NotificationsPage{}, errNoSession
	}

	var params []Param
	if limit != 0 {
		params = append(params, Param{Name: "limit", Value: strconv.Itoa(clampLimit(limit, 1, 100))})
	}
	if cursor != "" {
		params = append(params, Param{Name: "cursor", Value: cursor})
	}

	return query[atproto.NotificationsPage](ctx, c, "app.bsky.notification.listNotifications", params)
}

// UpdateSeen marks notifications up to seenAt as read.
func (c *Client) UpdateSeen(ctx context.Context, seenAt atproto.Timestamp) error {
	if c.session == nil {
		return errNoSession
	}
	body := map[string]atproto.Timestamp{"seenAt": seenAt}
	_, err := procedure[emptyResult](ctx, c, "app.bsky.notification.updateSeen", body)
	return err
}

// GetListBlocks fetches the moderation lists the session account blocks.
//
// Limit is clamped into [50, 100]: the service's lower bound sits above the
// usual default page size, so a small caller value is raised to 50 rather
// than passed through. Callers relying on tiny pages here will not get them.
func (c *Client) GetListBlocks(ctx context.Context, limit int, cursor string) (atproto.ListBlocksPage, error) {
	if c.session == nil {
		return atproto.ListBlocksPage{}, errNoSession
	}

	var params []Param
	if limit != 0 {
		params = append(params, Param{Name: "limit", Value: strconv.Itoa(clampLimit(limit, 50, 100))})
	}
	if cursor != "" {
		params = append(params, Param{Name: "cursor", Value: cursor})
	}

	return query[atproto.ListBlocksPage](ctx, c, "app.bsky.graph.getListBlocks", params)
}

// CreateRecord writes a record into the session account's repo and returns
// the strong reference of the committed record. An empty rkey lets the
// service mint one.
func (c *Client) CreateRecord(ctx context.Context, collection, rkey string, record any) (atproto.StrongRef, error) {
	if c.session == nil {
		return atproto.StrongRef{}, errNoSession
	}

	body := struct {
		Repo       string `json:"repo"`
		Collection string `json:"collection"`
		RKey       string `json:"rkey,omitempty"`
		Record     any    `json:"record"`
	}{
		Repo:       c.session.DID,
		Collection: collection,
		RKey:       rkey,
		Record:     record,
	}

	return procedure[atproto.StrongRef](ctx, c, "com.atproto.repo.createRecord", body)
}

// DeleteRecord removes a record from the session account's repo.
func (c *Client) DeleteRecord(ctx context.Context, collection, rkey string) error {
	if c.session == nil {
		return errNoSession
	}

	body := struct {
		Repo       string `json:"repo"`
		Collection string `json:"collection"`
		RKey       string `json:"rkey"`
	}{
		Repo:       c.session.DID,
		Collection: collection,
		RKey:       rkey,
	}

	_, err := procedure[emptyResult](ctx, c, "com.atproto.repo.deleteRecord", body)
	return err
}
