package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type PostStatus string

const (
	StatusDraft  PostStatus = "draft"
	StatusPublic PostStatus = "public"
)

type PostType string

const (
	TypeText    PostType = "text"
	TypeArticle PostType = "article"
	TypeLink    PostType = "link"
	TypeQuote   PostType = "quote"
	TypePodcast PostType = "podcast"
)

// ParsePostType принимает только известные типы ленты.
func ParsePostType(s string) (PostType, bool) {
	switch t := PostType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeText, TypeArticle, TypeLink, TypeQuote, TypePodcast:
		return t, true
	}
	return "", false
}

// Известные ключи metadata.
const (
	MetaURL           = "url"
	MetaTitle         = "title"
	MetaDescription   = "description"
	MetaImageURL      = "image_url"
	MetaPostImage     = "post_image"
	MetaBlueskyPostID = "bluesky_post_id"
)

// Metadata хранится в posts.metadata (jsonb) как плоский объект строк.
type Metadata map[string]string

func (m Metadata) Get(key string) string {
	if m == nil {
		return ""
	}
	return m[key]
}

func (m Metadata) Has(key string) bool {
	return m.Get(key) != ""
}

// Clone: копия для безопасной модификации.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type Post struct {
	ID          int64      `json:"id"`
	Content     string     `json:"content"`
	PreviewText string     `json:"preview_text"`
	Slug        string     `json:"slug"`
	Status      PostStatus `json:"status"`
	Type        PostType   `json:"type"`
	Metadata    Metadata   `json:"metadata"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Permalink: относительная ссылка на пост: slug + id.
func (p *Post) Permalink() string {
	if p.Slug == "" {
		return fmt.Sprintf("/p/%d", p.ID)
	}
	return fmt.Sprintf("/p/%s-%d", p.Slug, p.ID)
}

// PostView: пост вместе с постоянной ссылкой (для API ленты).
type PostView struct {
	*Post
	Permalink string `json:"permalink"`
}

func NewPostView(p *Post) PostView {
	return PostView{Post: p, Permalink: p.Permalink()}
}

// OptionalID принимает id как число, строку с числом, "" или null.
type OptionalID struct {
	Value int64
	Set   bool
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = OptionalID{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*o = OptionalID{}
			return nil
		}
		b = []byte(s)
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", string(b))
	}
	*o = OptionalID{Value: id, Set: true}
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.Value, 10)), nil
}

// swagger:model ComposeRequest
type ComposeRequest struct {
	Content       string          `json:"content"       example:"Новый пост https://example.com"`
	Status        string          `json:"status"        validate:"required,oneof=draft published" example:"published"`
	Metadata      json.RawMessage `json:"metadata"      swaggertype:"object"`
	ShareTelegram bool            `json:"shareTelegram"`
	ShareBluesky  bool            `json:"shareBluesky"`
	DraftID       OptionalID      `json:"draftId"       swaggertype:"integer"`
	EditPostID    OptionalID      `json:"editPostId"    swaggertype:"integer"`
}

// swagger:model PublishArticleRequest
type PublishArticleRequest struct {
	Title      string     `json:"title"      validate:"required" example:"Заметки о Go"`
	Content    string     `json:"content"    validate:"required" example:"# Заголовок\n\nТекст статьи"`
	EditPostID OptionalID `json:"editPostId" swaggertype:"integer"`
}

type LinkMetaRequest struct {
	URL string `json:"url" validate:"required,url" example:"https://go.dev/blog"`
}

// LinkMeta: результат разворачивания ссылки.
type LinkMeta struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}
