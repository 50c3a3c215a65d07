package atproto

// NSIDFeedPost is the record collection for posts.
const NSIDFeedPost = "app.bsky.feed.post"

// StrongRef points at another record by URI plus content hash. Both halves
// are required: a URI alone is not a strong reference.
type StrongRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

func (r *StrongRef) UnmarshalJSON(data []byte) error {
	type alias StrongRef
	var a alias
	if err := unmarshalStrict(data, &a, "strongRef", "uri", "cid"); err != nil {
		return err
	}
	*r = StrongRef(a)
	return nil
}

// ReplyRef anchors a post inside a thread.
type ReplyRef struct {
	Root   StrongRef `json:"root"`
	Parent StrongRef `json:"parent"`
}

func (r *ReplyRef) UnmarshalJSON(data []byte) error {
	type alias ReplyRef
	var a alias
	if err := unmarshalStrict(data, &a, "replyRef", "root", "parent"); err != nil {
		return err
	}
	*r = ReplyRef(a)
	return nil
}

// PostRecord is the app.bsky.feed.post record body. Facets and self-labels
// stay opaque: the client round-trips them without interpretation.
type PostRecord struct {
	Text      string    `json:"text"`
	CreatedAt Timestamp `json:"createdAt"`
	Reply     *ReplyRef `json:"reply,omitempty"`
	Embed     *Embed    `json:"embed,omitempty"`
	Langs     []string  `json:"langs,omitempty"`
	Facets    []Unknown `json:"facets,omitempty"`
	Labels    *Unknown  `json:"labels,omitempty"`
}

func (p PostRecord) MarshalJSON() ([]byte, error) {
	type alias PostRecord
	return marshalTyped(alias(p), NSIDFeedPost)
}

func (p *PostRecord) UnmarshalJSON(data []byte) error {
	type alias PostRecord
	var a alias
	if err := unmarshalTyped(data, &a, "post", NSIDFeedPost, "text", "createdAt"); err != nil {
		return err
	}
	*p = PostRecord(a)
	return nil
}

// PostView is a hydrated post as returned inside feeds and threads. The
// record payload stays an Unknown because its collection is only known at
// runtime; callers match it into a PostRecord via Decode when the URI says
// so.
type PostView struct {
	URI         string           `json:"uri"`
	CID         string           `json:"cid"`
	Author      ProfileViewBasic `json:"author"`
	Record      Unknown          `json:"record"`
	Embed       *EmbedView       `json:"embed,omitempty"`
	ReplyCount  *int64           `json:"replyCount,omitempty"`
	RepostCount *int64           `json:"repostCount,omitempty"`
	LikeCount   *int64           `json:"likeCount,omitempty"`
	IndexedAt   Timestamp        `json:"indexedAt"`
	Labels      []Unknown        `json:"labels,omitempty"`
}

func (p *PostView) UnmarshalJSON(data []byte) error {
	type alias PostView
	var a alias
	if err := unmarshalStrict(data, &a, "postView", "uri", "cid", "author", "record", "indexedAt"); err != nil {
		return err
	}
	*p = PostView(a)
	return nil
}

// FeedViewPost is one timeline entry: a post plus optional repost/reply
// context. The reason member (repost attribution) is schema-open and kept
// opaque.
type FeedViewPost struct {
	Post   PostView `json:"post"`
	Reply  *Unknown `json:"reply,omitempty"`
	Reason *Unknown `json:"reason,omitempty"`
}

func (f *FeedViewPost) UnmarshalJSON(data []byte) error {
	type alias FeedViewPost
	var a alias
	if err := unmarshalStrict(data, &a, "feedViewPost", "post"); err != nil {
		return err
	}
	*f = FeedViewPost(a)
	return nil
}

// TimelinePage is one page of app.bsky.feed.getTimeline. Cursor is opaque;
// pass it back verbatim to fetch the next page.
type TimelinePage struct {
	Cursor *string        `json:"cursor,omitempty"`
	Feed   []FeedViewPost `json:"feed"`
}

func (t *TimelinePage) UnmarshalJSON(data []byte) error {
	type alias TimelinePage
	var a alias
	if err := unmarshalStrict(data, &a, "timeline", "feed"); err != nil {
		return err
	}
	*t = TimelinePage(a)
	return nil
}

// PostsPage is the response of app.bsky.feed.getPosts.
type PostsPage struct {
	Posts []PostView `json:"posts"`
}

func (p *PostsPage) UnmarshalJSON(data []byte) error {
	type alias PostsPage
	var a alias
	if err := unmarshalStrict(data, &a, "posts", "posts"); err != nil {
		return err
	}
	*p = PostsPage(a)
	return nil
}
