package bluesky

import "strings"

const (
	PostCollection    = "app.bsky.feed.post"
	EmbedImagesType   = "app.bsky.embed.images"
	EmbedExternalType = "app.bsky.embed.external"
	FacetLinkType     = "app.bsky.richtext.facet#link"
)

// BlobRef represents an AT Protocol blob reference for uploaded content.
type BlobRef struct {
	Type string `json:"$type"`
	Ref  struct {
		Link string `json:"$link"`
	} `json:"ref"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
}

// PostRecord is the record body for app.bsky.feed.post.
type PostRecord struct {
	Type      string  `json:"$type"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"createdAt"`
	Facets    []Facet `json:"facets,omitempty"`
	Embed     any     `json:"embed,omitempty"`
}

type Facet struct {
	Index    ByteSlice      `json:"index"`
	Features []FacetFeature `json:"features"`
}

type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

type FacetFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri"`
}

// ImagesEmbed is app.bsky.embed.images.
type ImagesEmbed struct {
	Type   string       `json:"$type"`
	Images []ImageEmbed `json:"images"`
}

type ImageEmbed struct {
	Alt   string  `json:"alt"`
	Image BlobRef `json:"image"`
}

func NewImagesEmbed(blob BlobRef, alt string) *ImagesEmbed {
	return &ImagesEmbed{
		Type:   EmbedImagesType,
		Images: []ImageEmbed{{Alt: alt, Image: blob}},
	}
}

// ExternalEmbed is app.bsky.embed.external (link card).
type ExternalEmbed struct {
	Type     string       `json:"$type"`
	External ExternalLink `json:"external"`
}

type ExternalLink struct {
	URI         string   `json:"uri"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumb       *BlobRef `json:"thumb,omitempty"`
}

func NewExternalEmbed(uri, title, description string, thumb *BlobRef) *ExternalEmbed {
	return &ExternalEmbed{
		Type: EmbedExternalType,
		External: ExternalLink{
			URI:         uri,
			Title:       title,
			Description: description,
			Thumb:       thumb,
		},
	}
}

// RecordRef is the createRecord response.
type RecordRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// RKey returns the trailing path segment of the record AT-URI
// (at://did/app.bsky.feed.post/<rkey>), or "" if there is none.
func (r RecordRef) RKey() string {
	if !strings.Contains(r.URI, "/") {
		return ""
	}
	return r.URI[strings.LastIndex(r.URI, "/")+1:]
}
