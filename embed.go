package atproto

import "encoding/json"

const (
	NSIDEmbedImages          = "app.bsky.embed.images"
	NSIDEmbedExternal        = "app.bsky.embed.external"
	NSIDEmbedRecord          = "app.bsky.embed.record"
	NSIDEmbedRecordWithMedia = "app.bsky.embed.recordWithMedia"

	typeEmbedImagesView          = "app.bsky.embed.images#view"
	typeEmbedExternalView        = "app.bsky.embed.external#view"
	typeEmbedRecordView          = "app.bsky.embed.record#view"
	typeEmbedRecordWithMediaView = "app.bsky.embed.recordWithMedia#view"

	typeViewRecord    = "app.bsky.embed.record#viewRecord"
	typeViewNotFound  = "app.bsky.embed.record#viewNotFound"
	typeViewBlocked   = "app.bsky.embed.record#viewBlocked"
	typeGeneratorView = "app.bsky.feed.defs#generatorView"
	typeListView      = "app.bsky.graph.defs#listView"
)

// EmbedImage is one image attachment. The blob reference stays opaque.
type EmbedImage struct {
	Image Unknown `json:"image"`
	Alt   string  `json:"alt"`
}

func (e *EmbedImage) UnmarshalJSON(data []byte) error {
	type alias EmbedImage
	var a alias
	if err := unmarshalStrict(data, &a, "embedImage", "image", "alt"); err != nil {
		return err
	}
	*e = EmbedImage(a)
	return nil
}

type EmbedImages struct {
	Images []EmbedImage `json:"images"`
}

func (e EmbedImages) MarshalJSON() ([]byte, error) {
	type alias EmbedImages
	return marshalTyped(alias(e), NSIDEmbedImages)
}

func (e *EmbedImages) UnmarshalJSON(data []byte) error {
	type alias EmbedImages
	var a alias
	if err := unmarshalTyped(data, &a, "embedImages", NSIDEmbedImages, "images"); err != nil {
		return err
	}
	*e = EmbedImages(a)
	return nil
}

// ExternalLink is an outbound link card.
type ExternalLink struct {
	URI         string   `json:"uri"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumb       *Unknown `json:"thumb,omitempty"`
}

func (l *ExternalLink) UnmarshalJSON(data []byte) error {
	type alias ExternalLink
	var a alias
	if err := unmarshalStrict(data, &a, "externalLink", "uri", "title", "description"); err != nil {
		return err
	}
	*l = ExternalLink(a)
	return nil
}

type EmbedExternal struct {
	External ExternalLink `json:"external"`
}

func (e EmbedExternal) MarshalJSON() ([]byte, error) {
	type alias EmbedExternal
	return marshalTyped(alias(e), NSIDEmbedExternal)
}

func (e *EmbedExternal) UnmarshalJSON(data []byte) error {
	type alias EmbedExternal
	var a alias
	if err := unmarshalTyped(data, &a, "embedExternal", NSIDEmbedExternal, "external"); err != nil {
		return err
	}
	*e = EmbedExternal(a)
	return nil
}

// EmbedRecord quotes another record by strong reference.
type EmbedRecord struct {
	Record StrongRef `json:"record"`
}

func (e EmbedRecord) MarshalJSON() ([]byte, error) {
	type alias EmbedRecord
	return marshalTyped(alias(e), NSIDEmbedRecord)
}

func (e *EmbedRecord) UnmarshalJSON(data []byte) error {
	type alias EmbedRecord
	var a alias
	if err := unmarshalTyped(data, &a, "embedRecord", NSIDEmbedRecord, "record"); err != nil {
		return err
	}
	*e = EmbedRecord(a)
	return nil
}

type EmbedRecordWithMedia struct {
	Record EmbedRecord `json:"record"`
	Media  Embed       `json:"media"`
}

func (e EmbedRecordWithMedia) MarshalJSON() ([]byte, error) {
	type alias EmbedRecordWithMedia
	return marshalTyped(alias(e), NSIDEmbedRecordWithMedia)
}

func (e *EmbedRecordWithMedia) UnmarshalJSON(data []byte) error {
	type alias EmbedRecordWithMedia
	var a alias
	if err := unmarshalTyped(data, &a, "embedRecordWithMedia", NSIDEmbedRecordWithMedia, "record", "media"); err != nil {
		return err
	}
	*e = EmbedRecordWithMedia(a)
	return nil
}

// Embed is the post-side embed union. The wire always tags these with
// "$type"; declared order doubles as the structural tie-break for payloads
// that arrive untagged.
type Embed struct {
	Images          *EmbedImages
	External        *EmbedExternal
	Record          *EmbedRecord
	RecordWithMedia *EmbedRecordWithMedia
}

func (e *Embed) UnmarshalJSON(data []byte) error {
	var out Embed
	_, err := decodeUnion(data, "embed", []variant{
		{name: "images", typ: NSIDEmbedImages, decode: decodeInto(&out.Images)},
		{name: "external", typ: NSIDEmbedExternal, decode: decodeInto(&out.External)},
		{name: "recordWithMedia", typ: NSIDEmbedRecordWithMedia, decode: decodeInto(&out.RecordWithMedia)},
		{name: "record", typ: NSIDEmbedRecord, decode: decodeInto(&out.Record)},
	})
	if err != nil {
		return err
	}
	*e = out
	return nil
}

func (e Embed) MarshalJSON() ([]byte, error) {
	switch {
	case e.Images != nil:
		return json.Marshal(e.Images)
	case e.External != nil:
		return json.Marshal(e.External)
	case e.RecordWithMedia != nil:
		return json.Marshal(e.RecordWithMedia)
	case e.Record != nil:
		return json.Marshal(e.Record)
	}
	return []byte("null"), nil
}

// decodeInto adapts a variant pointer slot into the strict decode function
// the union decoder expects. The slot is only assigned on success, so a
// failed trial leaves no partial state behind.
func decodeInto[T any](slot **T) func([]byte) error {
	return func(data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*slot = &v
		return nil
	}
}

// ImageView is a hydrated image with CDN URLs.
type ImageView struct {
	Thumb    string `json:"thumb"`
	Fullsize string `json:"fullsize"`
	Alt      string `json:"alt"`
}

func (v *ImageView) UnmarshalJSON(data []byte) error {
	type alias ImageView
	var a alias
	if err := unmarshalStrict(data, &a, "imageView", "thumb", "fullsize", "alt"); err != nil {
		return err
	}
	*v = ImageView(a)
	return nil
}

type EmbedImagesView struct {
	Images []ImageView `json:"images"`
}

func (v EmbedImagesView) MarshalJSON() ([]byte, error) {
	type alias EmbedImagesView
	return marshalTyped(alias(v), typeEmbedImagesView)
}

func (v *EmbedImagesView) UnmarshalJSON(data []byte) error {
	type alias EmbedImagesView
	var a alias
	if err := unmarshalTyped(data, &a, "embedImagesView", typeEmbedImagesView, "images"); err != nil {
		return err
	}
	*v = EmbedImagesView(a)
	return nil
}

type ExternalLinkView struct {
	URI         string  `json:"uri"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumb       *string `json:"thumb,omitempty"`
}

func (v *ExternalLinkView) UnmarshalJSON(data []byte) error {
	type alias ExternalLinkView
	var a alias
	if err := unmarshalStrict(data, &a, "externalLinkView", "uri", "title", "description"); err != nil {
		return err
	}
	*v = ExternalLinkView(a)
	return nil
}

type EmbedExternalView struct {
	External ExternalLinkView `json:"external"`
}

func (v EmbedExternalView) MarshalJSON() ([]byte, error) {
	type alias EmbedExternalView
	return marshalTyped(alias(v), typeEmbedExternalView)
}

func (v *EmbedExternalView) UnmarshalJSON(data []byte) error {
	type alias EmbedExternalView
	var a alias
	if err := unmarshalTyped(data, &a, "embedExternalView", typeEmbedExternalView, "external"); err != nil {
		return err
	}
	*v = EmbedExternalView(a)
	return nil
}

type EmbedRecordViewWrap struct {
	Record RecordView `json:"record"`
}

func (v EmbedRecordViewWrap) MarshalJSON() ([]byte, error) {
	type alias EmbedRecordViewWrap
	return marshalTyped(alias(v), typeEmbedRecordView)
}

func (v *EmbedRecordViewWrap) UnmarshalJSON(data []byte) error {
	type alias EmbedRecordViewWrap
	var a alias
	if err := unmarshalTyped(data, &a, "embedRecordView", typeEmbedRecordView, "record"); err != nil {
		return err
	}
	*v = EmbedRecordViewWrap(a)
	return nil
}

type EmbedRecordWithMediaView struct {
	Record EmbedRecordViewWrap `json:"record"`
	Media  EmbedView           `json:"media"`
}

func (v EmbedRecordWithMediaView) MarshalJSON() ([]byte, error) {
	type alias EmbedRecordWithMediaView
	return marshalTyped(alias(v), typeEmbedRecordWithMediaView)
}

func (v *EmbedRecordWithMediaView) UnmarshalJSON(data []byte) error {
	type alias EmbedRecordWithMediaView
	var a alias
	if err := unmarshalTyped(data, &a, "embedRecordWithMediaView", typeEmbedRecordWithMediaView, "record", "media"); err != nil {
		return err
	}
	*v = EmbedRecordWithMediaView(a)
	return nil
}

// EmbedView is the hydrated embed union attached to post views.
type EmbedView struct {
	Images          *EmbedImagesView
	External        *EmbedExternalView
	Record          *EmbedRecordViewWrap
	RecordWithMedia *EmbedRecordWithMediaView
}

func (e *EmbedView) UnmarshalJSON(data []byte) error {
	var out EmbedView
	_, err := decodeUnion(data, "embedView", []variant{
		{name: "imagesView", typ: typeEmbedImagesView, decode: decodeInto(&out.Images)},
		{name: "externalView", typ: typeEmbedExternalView, decode: decodeInto(&out.External)},
		{name: "recordWithMediaView", typ: typeEmbedRecordWithMediaView, decode: decodeInto(&out.RecordWithMedia)},
		{name: "recordView", typ: typeEmbedRecordView, decode: decodeInto(&out.Record)},
	})
	if err != nil {
		return err
	}
	*e = out
	return nil
}

func (e EmbedView) MarshalJSON() ([]byte, error) {
	switch {
	case e.Images != nil:
		return json.Marshal(e.Images)
	case e.External != nil:
		return json.Marshal(e.External)
	case e.RecordWithMedia != nil:
		return json.Marshal(e.RecordWithMedia)
	case e.Record != nil:
		return json.Marshal(e.Record)
	}
	return []byte("null"), nil
}

// ViewRecord is a successfully resolved quoted record.
type ViewRecord struct {
	URI       string           `json:"uri"`
	CID       string           `json:"cid"`
	Author    ProfileViewBasic `json:"author"`
	Value     Unknown          `json:"value"`
	IndexedAt Timestamp        `json:"indexedAt"`
	Labels    []Unknown        `json:"labels,omitempty"`
}

func (v ViewRecord) MarshalJSON() ([]byte, error) {
	type alias ViewRecord
	return marshalTyped(alias(v), typeViewRecord)
}

func (v *ViewRecord) UnmarshalJSON(data []byte) error {
	type alias ViewRecord
	var a alias
	if err := unmarshalTyped(data, &a, "viewRecord", typeViewRecord, "uri", "cid", "author", "value", "indexedAt"); err != nil {
		return err
	}
	*v = ViewRecord(a)
	return nil
}

// ViewNotFound marks a quoted record that no longer exists.
type ViewNotFound struct {
	URI      string `json:"uri"`
	NotFound bool   `json:"notFound"`
}

func (v ViewNotFound) MarshalJSON() ([]byte, error) {
	type alias ViewNotFound
	return marshalTyped(alias(v), typeViewNotFound)
}

func (v *ViewNotFound) UnmarshalJSON(data []byte) error {
	type alias ViewNotFound
	var a alias
	if err := unmarshalTyped(data, &a, "viewNotFound", typeViewNotFound, "uri", "notFound"); err != nil {
		return err
	}
	*v = ViewNotFound(a)
	return nil
}

// ViewBlocked marks a quoted record hidden by a block relationship.
type ViewBlocked struct {
	URI     string   `json:"uri"`
	Blocked bool     `json:"blocked"`
	Author  *Unknown `json:"author,omitempty"`
}

func (v ViewBlocked) MarshalJSON() ([]byte, error) {
	type alias ViewBlocked
	return marshalTyped(alias(v), typeViewBlocked)
}

func (v *ViewBlocked) UnmarshalJSON(data []byte) error {
	type alias ViewBlocked
	var a alias
	if err := unmarshalTyped(data, &a, "viewBlocked", typeViewBlocked, "uri", "blocked"); err != nil {
		return err
	}
	*v = ViewBlocked(a)
	return nil
}

// GeneratorView describes a feed generator service record.
type GeneratorView struct {
	URI         string      `json:"uri"`
	CID         string      `json:"cid"`
	DID         string      `json:"did"`
	Creator     ProfileView `json:"creator"`
	DisplayName string      `json:"displayName"`
	Description *string     `json:"description,omitempty"`
	Avatar      *string     `json:"avatar,omitempty"`
	LikeCount   *int64      `json:"likeCount,omitempty"`
	IndexedAt   Timestamp   `json:"indexedAt"`
}

func (v GeneratorView) MarshalJSON() ([]byte, error) {
	type alias GeneratorView
	return marshalTyped(alias(v), typeGeneratorView)
}

func (v *GeneratorView) UnmarshalJSON(data []byte) error {
	type alias GeneratorView
	var a alias
	if err := unmarshalTyped(data, &a, "generatorView", typeGeneratorView, "uri", "cid", "did", "creator", "displayName", "indexedAt"); err != nil {
		return err
	}
	*v = GeneratorView(a)
	return nil
}

// RecordView resolves what a quoted record turned out to be. The payload
// often arrives without a discriminant, so the declared order below is a
// contract: the full record shape is the most specific and goes first, the
// marker shapes (not-found, blocked) follow, then the service views. A
// payload like {"uri":..., "notFound":true} falls through the record
// candidate because author and value are missing, and lands on not-found.
type RecordView struct {
	Record    *ViewRecord
	NotFound  *ViewNotFound
	Blocked   *ViewBlocked
	Generator *GeneratorView
	List      *ListView
}

func (r *RecordView) UnmarshalJSON(data []byte) error {
	var out RecordView
	_, err := decodeUnion(data, "recordView", []variant{
		{name: "record", typ: typeViewRecord, decode: decodeInto(&out.Record)},
		{name: "notFound", typ: typeViewNotFound, decode: decodeInto(&out.NotFound)},
		{name: "blocked", typ: typeViewBlocked, decode: decodeInto(&out.Blocked)},
		{name: "generator", typ: typeGeneratorView, decode: decodeInto(&out.Generator)},
		{name: "list", typ: typeListView, decode: decodeInto(&out.List)},
	})
	if err != nil {
		return err
	}
	*r = out
	return nil
}

func (r RecordView) MarshalJSON() ([]byte, error) {
	switch {
	case r.Record != nil:
		return json.Marshal(r.Record)
	case r.NotFound != nil:
		return json.Marshal(r.NotFound)
	case r.Blocked != nil:
		return json.Marshal(r.Blocked)
	case r.Generator != nil:
		return json.Marshal(r.Generator)
	case r.List != nil:
		return json.Marshal(r.List)
	}
	return []byte("null"), nil
}
