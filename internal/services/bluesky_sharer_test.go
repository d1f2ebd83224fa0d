package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imax/maxua-public/internal/bluesky"
	"github.com/imax/maxua-public/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	loginErr  error
	uploadErr error
	ident     string
	uploads   [][]byte
	mimes     []string
	record    *bluesky.PostRecord
}

func (s *fakeSession) Login(ctx context.Context, identifier, password string) error {
	s.ident = identifier
	return s.loginErr
}

func (s *fakeSession) UploadBlob(ctx context.Context, data []byte, mimeType string) (*bluesky.BlobRef, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.uploads = append(s.uploads, data)
	s.mimes = append(s.mimes, mimeType)
	ref := &bluesky.BlobRef{Type: "blob", MimeType: mimeType, Size: len(data)}
	ref.Ref.Link = "bafkreiblob"
	return ref, nil
}

func (s *fakeSession) CreatePost(ctx context.Context, record bluesky.PostRecord) (*bluesky.RecordRef, error) {
	s.record = &record
	return &bluesky.RecordRef{URI: "at://did:plc:me/app.bsky.feed.post/3kxyz", CID: "bafy"}, nil
}

func pngBytes(t *testing.T, w, h int, noisy bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rnd := rand.New(rand.NewSource(1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
			if noisy {
				c = color.RGBA{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256)), A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageServer(t *testing.T) *httptest.Server {
	small := pngBytes(t, 4, 4, false)
	mux := http.NewServeMux()
	mux.HandleFunc("/img.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(small)
	})
	mux.HandleFunc("/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestBlueskySharer(srv *httptest.Server, sess *fakeSession) *BlueskySharer {
	s := NewBlueskySharer("", "me.bsky.social", "app-pass", "ua", srv.Client())
	s.newSession = func() BlueskySession { return sess }
	s.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestSelectEmbed(t *testing.T) {
	// картинка поста важнее карточки ссылки
	plan := SelectEmbed(models.Metadata{"post_image": "http://x/img.jpg", "url": "http://y", "title": "Y"})
	assert.Equal(t, EmbedImage, plan.Kind)
	assert.Equal(t, "http://x/img.jpg", plan.ImageURL)
	assert.Empty(t, plan.URI)

	plan = SelectEmbed(models.Metadata{"url": "http://y", "title": "Y", "description": "d", "image_url": "http://y/t.jpg"})
	assert.Equal(t, EmbedPlan{Kind: EmbedExternal, URI: "http://y", Title: "Y", Description: "d", ThumbURL: "http://y/t.jpg"}, plan)

	assert.Equal(t, EmbedNone, SelectEmbed(models.Metadata{"url": "http://y"}).Kind, "без title карточки нет")
	assert.Equal(t, EmbedNone, SelectEmbed(nil).Kind)
}

func TestBlueskyShare_ImageEmbed(t *testing.T) {
	srv := imageServer(t)
	sess := &fakeSession{}
	s := newTestBlueskySharer(srv, sess)

	post := &models.Post{
		ID:      1,
		Content: "Фото дня https://example.com",
		Metadata: models.Metadata{
			"post_image": srv.URL + "/img.png",
			"url":        "http://y",
			"title":      "Y",
		},
	}
	res, err := s.Share(context.Background(), post)
	require.NoError(t, err)

	assert.Equal(t, "me.bsky.social", sess.ident)
	assert.Equal(t, &BlueskyShare{Success: true, PostURI: "at://did:plc:me/app.bsky.feed.post/3kxyz", PostID: "3kxyz"}, res)
	require.NotNil(t, sess.record)
	assert.Equal(t, "2025-03-01T10:00:00.000Z", sess.record.CreatedAt)

	embed, ok := sess.record.Embed.(*bluesky.ImagesEmbed)
	require.True(t, ok, "ожидали images embed, получили %T", sess.record.Embed)
	assert.Equal(t, bluesky.EmbedImagesType, embed.Type)
	require.Len(t, embed.Images, 1)
	assert.Equal(t, "", embed.Images[0].Alt)
	assert.Equal(t, []string{"image/png"}, sess.mimes)

	require.Len(t, sess.record.Facets, 1)
	f := sess.record.Facets[0]
	assert.Equal(t, "https://example.com", post.Content[f.Index.ByteStart:f.Index.ByteEnd])
}

func TestBlueskyShare_ImageFailureIsFatal(t *testing.T) {
	srv := imageServer(t)
	sess := &fakeSession{}
	s := newTestBlueskySharer(srv, sess)

	_, err := s.Share(context.Background(), &models.Post{
		ID: 1, Content: "x", Metadata: models.Metadata{"post_image": srv.URL + "/missing.png"},
	})
	require.ErrorIs(t, err, ErrShare)
	assert.Nil(t, sess.record, "пост без картинки публиковаться не должен")
}

func TestBlueskyShare_ExternalEmbedThumbIsOptional(t *testing.T) {
	srv := imageServer(t)

	sess := &fakeSession{}
	_, err := newTestBlueskySharer(srv, sess).Share(context.Background(), &models.Post{
		ID: 1, Content: "link",
		Metadata: models.Metadata{"url": "https://go.dev", "title": "Go", "image_url": srv.URL + "/missing.png"},
	})
	require.NoError(t, err)
	ext, ok := sess.record.Embed.(*bluesky.ExternalEmbed)
	require.True(t, ok)
	assert.Equal(t, "https://go.dev", ext.External.URI)
	assert.Equal(t, "Go", ext.External.Title)
	assert.Equal(t, "", ext.External.Description)
	assert.Nil(t, ext.External.Thumb)

	sess = &fakeSession{}
	_, err = newTestBlueskySharer(srv, sess).Share(context.Background(), &models.Post{
		ID: 2, Content: "link",
		Metadata: models.Metadata{"url": "https://go.dev", "title": "Go", "image_url": srv.URL + "/img.png"},
	})
	require.NoError(t, err)
	ext = sess.record.Embed.(*bluesky.ExternalEmbed)
	require.NotNil(t, ext.External.Thumb)
	assert.Equal(t, "bafkreiblob", ext.External.Thumb.Ref.Link)
}

func TestBlueskyShare_Errors(t *testing.T) {
	srv := imageServer(t)

	noCreds := NewBlueskySharer("", "", "", "ua", srv.Client())
	_, err := noCreds.Share(context.Background(), &models.Post{ID: 1, Content: "x"})
	require.ErrorIs(t, err, ErrShare)
	require.ErrorIs(t, err, ErrBlueskyCredentials)

	sess := &fakeSession{loginErr: errors.New("create session: bad password")}
	_, err = newTestBlueskySharer(srv, sess).Share(context.Background(), &models.Post{ID: 1, Content: "x"})
	require.ErrorIs(t, err, ErrShare)
	assert.Nil(t, sess.record)

	_, err = newTestBlueskySharer(srv, &fakeSession{}).Share(context.Background(), &models.Post{ID: 1})
	require.ErrorIs(t, err, ErrShare)
}

func TestPrepareBlob(t *testing.T) {
	small := pngBytes(t, 8, 8, false)
	data, mime, err := prepareBlob(small)
	require.NoError(t, err)
	assert.Equal(t, small, data)
	assert.Equal(t, "image/png", mime)

	big := pngBytes(t, 600, 600, true)
	require.Greater(t, len(big), maxBlobBytes)
	data, mime, err = prepareBlob(big)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.LessOrEqual(t, len(data), maxBlobBytes)

	_, _, err = prepareBlob(bytes.Repeat([]byte("x"), maxBlobBytes+1))
	require.Error(t, err)
}
