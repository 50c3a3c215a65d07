package atproto

// ProfileViewBasic is the compact actor view attached to posts, replies and
// notifications.
type ProfileViewBasic struct {
	DID         string    `json:"did"`
	Handle      string    `json:"handle"`
	DisplayName *string   `json:"displayName,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	Labels      []Unknown `json:"labels,omitempty"`
}

func (p *ProfileViewBasic) UnmarshalJSON(data []byte) error {
	type alias ProfileViewBasic
	var a alias
	if err := unmarshalStrict(data, &a, "profileViewBasic", "did", "handle"); err != nil {
		return err
	}
	*p = ProfileViewBasic(a)
	return nil
}

// ProfileView adds the free-text bio and index time.
type ProfileView struct {
	DID         string     `json:"did"`
	Handle      string     `json:"handle"`
	DisplayName *string    `json:"displayName,omitempty"`
	Description *string    `json:"description,omitempty"`
	Avatar      *string    `json:"avatar,omitempty"`
	IndexedAt   *Timestamp `json:"indexedAt,omitempty"`
	Labels      []Unknown  `json:"labels,omitempty"`
}

func (p *ProfileView) UnmarshalJSON(data []byte) error {
	type alias ProfileView
	var a alias
	if err := unmarshalStrict(data, &a, "profileView", "did", "handle"); err != nil {
		return err
	}
	*p = ProfileView(a)
	return nil
}

// ProfileViewDetailed is the full profile returned by app.bsky.actor.getProfile.
type ProfileViewDetailed struct {
	DID            string     `json:"did"`
	Handle         string     `json:"handle"`
	DisplayName    *string    `json:"displayName,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Avatar         *string    `json:"avatar,omitempty"`
	Banner         *string    `json:"banner,omitempty"`
	FollowersCount *int64     `json:"followersCount,omitempty"`
	FollowsCount   *int64     `json:"followsCount,omitempty"`
	PostsCount     *int64     `json:"postsCount,omitempty"`
	IndexedAt      *Timestamp `json:"indexedAt,omitempty"`
	CreatedAt      *Timestamp `json:"createdAt,omitempty"`
	Labels         []Unknown  `json:"labels,omitempty"`
}

func (p *ProfileViewDetailed) UnmarshalJSON(data []byte) error {
	type alias ProfileViewDetailed
	var a alias
	if err := unmarshalStrict(data, &a, "profileViewDetailed", "did", "handle"); err != nil {
		return err
	}
	*p = ProfileViewDetailed(a)
	return nil
}
