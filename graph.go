package atproto

import "encoding/json"

// ListPurpose declares what a list is for: moderation, curation, or starter
// pack reference.
type ListPurpose string

const (
	PurposeModList       ListPurpose = "app.bsky.graph.defs#modlist"
	PurposeCurateList    ListPurpose = "app.bsky.graph.defs#curatelist"
	PurposeReferenceList ListPurpose = "app.bsky.graph.defs#referencelist"
)

func (p *ListPurpose) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &FormatError{Path: "purpose", Value: string(data)}
	}
	switch ListPurpose(s) {
	case PurposeModList, PurposeCurateList, PurposeReferenceList:
		*p = ListPurpose(s)
		return nil
	}
	return &FormatError{Path: "purpose", Value: s}
}

// ListView describes a user list. It doubles as a record-view union
// candidate, so its decode must stay strict.
type ListView struct {
	URI           string       `json:"uri"`
	CID           string       `json:"cid"`
	Creator       *ProfileView `json:"creator,omitempty"`
	Name          string       `json:"name"`
	Purpose       ListPurpose  `json:"purpose"`
	Description   *string      `json:"description,omitempty"`
	Avatar        *string      `json:"avatar,omitempty"`
	ListItemCount *int64       `json:"listItemCount,omitempty"`
	IndexedAt     Timestamp    `json:"indexedAt"`
	Labels        []Unknown    `json:"labels,omitempty"`
}

func (v ListView) MarshalJSON() ([]byte, error) {
	type alias ListView
	return marshalTyped(alias(v), typeListView)
}

func (v *ListView) UnmarshalJSON(data []byte) error {
	type alias ListView
	var a alias
	if err := unmarshalTyped(data, &a, "listView", typeListView, "uri", "cid", "name", "purpose", "indexedAt"); err != nil {
		return err
	}
	*v = ListView(a)
	return nil
}

// ListItemView is one membership entry inside a list.
type ListItemView struct {
	URI     string      `json:"uri"`
	Subject ProfileView `json:"subject"`
}

func (v *ListItemView) UnmarshalJSON(data []byte) error {
	type alias ListItemView
	var a alias
	if err := unmarshalStrict(data, &a, "listItemView", "uri", "subject"); err != nil {
		return err
	}
	*v = ListItemView(a)
	return nil
}

// ListBlocksPage is one page of app.bsky.graph.getListBlocks: the moderation
// lists the session account is blocking.
type ListBlocksPage struct {
	Cursor *string    `json:"cursor,omitempty"`
	Lists  []ListView `json:"lists"`
}

func (p *ListBlocksPage) UnmarshalJSON(data []byte) error {
	type alias ListBlocksPage
	var a alias
	if err := unmarshalStrict(data, &a, "listBlocks", "lists"); err != nil {
		return err
	}
	*p = ListBlocksPage(a)
	return nil
}
