package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/imax/maxua-public/internal/bluesky"
	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/models"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	ChannelBluesky = "bluesky"

	postImageTimeout = 10 * time.Second
	thumbTimeout     = 5 * time.Second

	// лимит PDS на блоб около 1 МБ, оставляем запас
	maxBlobBytes  = 950_000
	maxImageBytes = 20 << 20
)

var ErrBlueskyCredentials = errors.New("BLUESKY_USERNAME or BLUESKY_PASSWORD is not set")

// BlueskySession: одна авторизованная сессия PDS (*bluesky.Client).
type BlueskySession interface {
	Login(ctx context.Context, identifier, password string) error
	UploadBlob(ctx context.Context, data []byte, mimeType string) (*bluesky.BlobRef, error)
	CreatePost(ctx context.Context, record bluesky.PostRecord) (*bluesky.RecordRef, error)
}

type BlueskyShare struct {
	Success bool   `json:"success"`
	PostURI string `json:"postUri"`
	PostID  string `json:"postId"`
}

type EmbedKind int

const (
	EmbedNone EmbedKind = iota
	EmbedImage
	EmbedExternal
)

// EmbedPlan: что прикрепить к записи. Картинка и карточка ссылки взаимоисключающие.
type EmbedPlan struct {
	Kind        EmbedKind
	ImageURL    string
	URI         string
	Title       string
	Description string
	ThumbURL    string
}

// SelectEmbed: post_image важнее карточки; карточка только при url и title.
func SelectEmbed(meta models.Metadata) EmbedPlan {
	if img := meta.Get(models.MetaPostImage); img != "" {
		return EmbedPlan{Kind: EmbedImage, ImageURL: img}
	}
	if meta.Has(models.MetaURL) && meta.Has(models.MetaTitle) {
		return EmbedPlan{
			Kind:        EmbedExternal,
			URI:         meta.Get(models.MetaURL),
			Title:       meta.Get(models.MetaTitle),
			Description: meta.Get(models.MetaDescription),
			ThumbURL:    meta.Get(models.MetaImageURL),
		}
	}
	return EmbedPlan{Kind: EmbedNone}
}

type BlueskySharer struct {
	newSession func() BlueskySession
	username   string
	password   string
	userAgent  string
	images     *http.Client
	now        func() time.Time
}

func NewBlueskySharer(service, username, password, userAgent string, httpClient *http.Client) *BlueskySharer {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &BlueskySharer{
		newSession: func() BlueskySession {
			return bluesky.NewClient(service, userAgent, httpClient)
		},
		username:  username,
		password:  password,
		userAgent: userAgent,
		images:    httpClient,
		now:       time.Now,
	}
}

// Share логинится заново на каждый вызов и создаёт запись с фасетами и embed.
func (s *BlueskySharer) Share(ctx context.Context, post *models.Post) (*BlueskyShare, error) {
	if post == nil || post.Content == "" {
		return nil, shareErr(ChannelBluesky, errors.New("invalid post data"))
	}
	if s.username == "" || s.password == "" {
		return nil, shareErr(ChannelBluesky, ErrBlueskyCredentials)
	}
	log := logger.WithCtx(ctx).With(zap.Int64("post_id", post.ID), zap.String("channel", ChannelBluesky))

	sess := s.newSession()
	if err := sess.Login(ctx, s.username, s.password); err != nil {
		return nil, shareErr(ChannelBluesky, err)
	}

	record := bluesky.PostRecord{
		Text:      post.Content,
		CreatedAt: s.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	if facets := bluesky.BuildFacets(post.Content); len(facets) > 0 {
		record.Facets = facets
	}

	plan := SelectEmbed(post.Metadata)
	switch plan.Kind {
	case EmbedImage:
		blob, err := s.uploadImage(ctx, sess, plan.ImageURL, postImageTimeout)
		if err != nil {
			return nil, shareErr(ChannelBluesky, fmt.Errorf("failed to upload post image: %w", err))
		}
		record.Embed = bluesky.NewImagesEmbed(*blob, "")

	case EmbedExternal:
		var thumb *bluesky.BlobRef
		if plan.ThumbURL != "" {
			blob, err := s.uploadImage(ctx, sess, plan.ThumbURL, thumbTimeout)
			if err != nil {
				log.Warn("Превью ссылки не загружено, публикуем без него", zap.Error(err))
			} else {
				thumb = blob
			}
		}
		record.Embed = bluesky.NewExternalEmbed(plan.URI, plan.Title, plan.Description, thumb)
	}

	ref, err := sess.CreatePost(ctx, record)
	if err != nil {
		return nil, shareErr(ChannelBluesky, err)
	}

	log.Info("Пост опубликован в Bluesky", zap.String("uri", ref.URI))
	return &BlueskyShare{Success: true, PostURI: ref.URI, PostID: ref.RKey()}, nil
}

func (s *BlueskySharer) uploadImage(ctx context.Context, sess BlueskySession, imageURL string, timeout time.Duration) (*bluesky.BlobRef, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := fetchImage(ctx, s.images, s.userAgent, imageURL)
	if err != nil {
		return nil, err
	}
	data, mime, err := prepareBlob(data)
	if err != nil {
		return nil, err
	}
	return sess.UploadBlob(ctx, data, mime)
}

func fetchImage(ctx context.Context, client *http.Client, userAgent, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image %s returned %d", imageURL, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

var blobSides = []int{2048, 1600, 1200, 800, 600, 400}

// prepareBlob оставляет небольшие картинки как есть, крупные уменьшает и
// перекодирует в JPEG, пока не влезут в лимит блоба.
func prepareBlob(data []byte) ([]byte, string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	if len(data) <= maxBlobBytes {
		return data, mime, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	for _, side := range blobSides {
		var buf bytes.Buffer
		resized := imaging.Fit(img, side, side, imaging.Lanczos)
		if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
			return nil, "", fmt.Errorf("encode image: %w", err)
		}
		if buf.Len() <= maxBlobBytes {
			return buf.Bytes(), "image/jpeg", nil
		}
	}
	return nil, "", fmt.Errorf("image too large: %d bytes", len(data))
}
