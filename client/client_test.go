package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	atproto "github.com/mmattbtw/ATProtoKit"
	"github.com/mmattbtw/ATProtoKit/cache"
)

func fixtureServer(t *testing.T, e *echo.Echo) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithTransport(srv.Client()))
	return srv, c
}

func testSession() *Session {
	return &Session{
		Handle:    "alice.test",
		DID:       "did:plc:abc",
		AccessJwt: "jwt-token",
	}
}

func TestQueryStringOrderAndEscaping(t *testing.T) {
	var gotQuery string
	e := echo.New()
	e.GET("/xrpc/app.bsky.actor.getProfile", func(c echo.Context) error {
		gotQuery = c.Request().URL.RawQuery
		return c.JSON(http.StatusOK, map[string]string{"did": "did:plc:abc", "handle": "alice.test"})
	})
	_, c := fixtureServer(t, e)

	if _, err := c.GetProfile(context.Background(), "alice.test"); err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if gotQuery != "actor=alice.test" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestTimelineLimitClamp(t *testing.T) {
	var gotQuery string
	e := echo.New()
	e.GET("/xrpc/app.bsky.feed.getTimeline", func(c echo.Context) error {
		gotQuery = c.Request().URL.RawQuery
		return c.JSON(http.StatusOK, map[string]any{"feed": []any{}})
	})
	_, c := fixtureServer(t, e)
	c.SetSession(testSession())

	cases := []struct {
		limit int
		want  string
	}{
		{150, "limit=100"},
		{-5, "limit=1"},
		{25, "limit=25"},
		{0, ""},
	}
	for _, tc := range cases {
		if _, err := c.GetTimeline(context.Background(), TimelineRequest{Limit: tc.limit}); err != nil {
			t.Fatalf("limit %d: %v", tc.limit, err)
		}
		if gotQuery != tc.want {
			t.Fatalf("limit %d transmitted %q, want %q", tc.limit, gotQuery, tc.want)
		}
	}
}

func TestListBlocksLowerBoundQuirk(t *testing.T) {
	// The list-blocks page size clamps into [50, 100]. The lower bound
	// sits above the usual default page size; the literal transmitted
	// value is the contract, so it is asserted here rather than corrected.
	var gotQuery string
	e := echo.New()
	e.GET("/xrpc/app.bsky.graph.getListBlocks", func(c echo.Context) error {
		gotQuery = c.Request().URL.RawQuery
		return c.JSON(http.StatusOK, map[string]any{"lists": []any{}})
	})
	_, c := fixtureServer(t, e)
	c.SetSession(testSession())

	cases := []struct {
		limit int
		want  string
	}{
		{150, "limit=100"},
		{10, "limit=50"},
		{1, "limit=50"},
		{75, "limit=75"},
	}
	for _, tc := range cases {
		if _, err := c.GetListBlocks(context.Background(), tc.limit, ""); err != nil {
			t.Fatalf("limit %d: %v", tc.limit, err)
		}
		if gotQuery != tc.want {
			t.Fatalf("limit %d transmitted %q, want %q", tc.limit, gotQuery, tc.want)
		}
	}
}

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	e := echo.New()
	e.GET("/xrpc/app.bsky.actor.getProfile", func(c echo.Context) error {
		gotAuth = c.Request().Header.Get("Authorization")
		return c.JSON(http.StatusOK, map[string]string{"did": "did:plc:abc", "handle": "alice.test"})
	})
	_, c := fixtureServer(t, e)

	if _, err := c.GetProfile(context.Background(), "alice.test"); err != nil {
		t.Fatalf("unauthenticated call: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("no session but Authorization = %q", gotAuth)
	}

	c.SetSession(testSession())
	if _, err := c.GetProfile(context.Background(), "alice.test"); err != nil {
		t.Fatalf("authenticated call: %v", err)
	}
	if gotAuth != "Bearer jwt-token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestAPIErrorSurface(t *testing.T) {
	e := echo.New()
	e.GET("/xrpc/app.bsky.feed.getTimeline", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":   "AuthRequired",
			"message": "authentication required",
		})
	})
	_, c := fixtureServer(t, e)
	c.SetSession(testSession())

	_, err := c.GetTimeline(context.Background(), TimelineRequest{})
	var apiErr *atproto.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.Code != "AuthRequired" || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("api error = %+v", apiErr)
	}
}

func TestMalformedBodyIsAnErrorValue(t *testing.T) {
	e := echo.New()
	e.GET("/xrpc/app.bsky.actor.getProfile", func(c echo.Context) error {
		return c.String(http.StatusOK, "{not json")
	})
	_, c := fixtureServer(t, e)

	_, err := c.GetProfile(context.Background(), "alice.test")
	if err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestDecodeErrorCarriesPath(t *testing.T) {
	e := echo.New()
	e.GET("/xrpc/app.bsky.actor.getProfile", func(c echo.Context) error {
		// handle missing: required-field failure must surface with path.
		return c.JSON(http.StatusOK, map[string]string{"did": "did:plc:abc"})
	})
	_, c := fixtureServer(t, e)

	_, err := c.GetProfile(context.Background(), "alice.test")
	var rerr *atproto.RequiredFieldError
	if !errors.As(err, &rerr) {
		t.Fatalf("got %v, want RequiredFieldError", err)
	}
	if rerr.Path != "profileViewDetailed.handle" {
		t.Fatalf("path = %q", rerr.Path)
	}
}

type failingTransport struct{}

func (failingTransport) Do(req *http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportErrorPropagated(t *testing.T) {
	c := New("https://example.com", WithTransport(failingTransport{}))
	_, err := c.GetProfile(context.Background(), "alice.test")
	var terr *atproto.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("got %v, want TransportError", err)
	}
}

func TestBadHostFailsConstruction(t *testing.T) {
	c := New("not-a-url", WithTransport(failingTransport{}))
	_, err := c.GetProfile(context.Background(), "alice.test")
	var uerr *atproto.URLConstructionError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %v, want URLConstructionError", err)
	}
}

func TestResolveHandleCached(t *testing.T) {
	hits := 0
	e := echo.New()
	e.GET("/xrpc/com.atproto.identity.resolveHandle", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, map[string]string{"did": "did:plc:abc"})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	c := New(srv.URL,
		WithTransport(srv.Client()),
		WithCache(cache.NewMemory(time.Minute, time.Minute)),
	)

	for i := 0; i < 3; i++ {
		did, err := c.ResolveHandle(context.Background(), "alice.test")
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if did != "did:plc:abc" {
			t.Fatalf("did = %q", did)
		}
	}
	if hits != 1 {
		t.Fatalf("server hit %d times, want 1", hits)
	}
}

func TestCreateRecordUsesSessionRepo(t *testing.T) {
	var gotBody map[string]json.RawMessage
	e := echo.New()
	e.POST("/xrpc/com.atproto.repo.createRecord", func(c echo.Context) error {
		if err := json.NewDecoder(c.Request().Body).Decode(&gotBody); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]string{"uri": "at://did:plc:abc/app.bsky.feed.post/1", "cid": "bafy1"})
	})
	_, c := fixtureServer(t, e)
	c.SetSession(testSession())

	post := atproto.PostRecord{Text: "hello", CreatedAt: atproto.Now()}
	ref, err := c.CreateRecord(context.Background(), "app.bsky.feed.post", "", post)
	if err != nil {
		t.Fatalf("create record: %v", err)
	}
	if ref.CID != "bafy1" {
		t.Fatalf("ref = %+v", ref)
	}
	if string(gotBody["repo"]) != `"did:plc:abc"` {
		t.Fatalf("repo = %s", gotBody["repo"])
	}
	var record map[string]json.RawMessage
	if err := json.Unmarshal(gotBody["record"], &record); err != nil {
		t.Fatalf("record: %v", err)
	}
	if string(record["$type"]) != `"app.bsky.feed.post"` {
		t.Fatalf("record $type = %s", record["$type"])
	}
}

func TestAuthenticatedEndpointsRequireSession(t *testing.T) {
	c := New("https://example.com", WithTransport(failingTransport{}))
	if _, err := c.GetTimeline(context.Background(), TimelineRequest{}); err == nil {
		t.Fatalf("timeline without session must fail")
	}
	if _, err := c.GetListBlocks(context.Background(), 50, ""); err == nil {
		t.Fatalf("list blocks without session must fail")
	}
	if err := c.UpdateSeen(context.Background(), atproto.Now()); err == nil {
		t.Fatalf("update seen without session must fail")
	}
}

func TestGetPostsTruncatesURIs(t *testing.T) {
	var gotCount int
	e := echo.New()
	e.GET("/xrpc/app.bsky.feed.getPosts", func(c echo.Context) error {
		gotCount = len(c.QueryParams()["uris"])
		return c.JSON(http.StatusOK, map[string]any{"posts": []any{}})
	})
	_, c := fixtureServer(t, e)

	uris := make([]string, 30)
	for i := range uris {
		uris[i] = "at://did:plc:abc/app.bsky.feed.post/1"
	}
	if _, err := c.GetPosts(context.Background(), uris); err != nil {
		t.Fatalf("get posts: %v", err)
	}
	if gotCount != 25 {
		t.Fatalf("transmitted %d uris, want 25", gotCount)
	}
}

func TestPaginationCursorPassedVerbatim(t *testing.T) {
	var gotCursor string
	e := echo.New()
	e.GET("/xrpc/app.bsky.notification.listNotifications", func(c echo.Context) error {
		gotCursor = c.QueryParam("cursor")
		return c.JSON(http.StatusOK, map[string]any{
			"cursor":        "opaque::next==",
			"notifications": []any{},
		})
	})
	_, c := fixtureServer(t, e)
	c.SetSession(testSession())

	page, err := c.ListNotifications(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if page.Cursor == nil {
		t.Fatalf("missing cursor")
	}

	if _, err := c.ListNotifications(context.Background(), 0, *page.Cursor); err != nil {
		t.Fatalf("second page: %v", err)
	}
	if gotCursor != "opaque::next==" {
		t.Fatalf("cursor transmitted %q", gotCursor)
	}
}
