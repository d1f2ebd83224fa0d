package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/services"

	"github.com/gorilla/mux"
)

type fakeCompose struct {
	lastReq models.ComposeRequest
	post    *models.Post
	shares  []services.ShareResult
	drafts  []*models.Post
	meta    *models.LinkMeta
	err     error
	deleted int64
}

func (f *fakeCompose) Submit(_ context.Context, req models.ComposeRequest) (*models.Post, []services.ShareResult, error) {
	f.lastReq = req
	return f.post, f.shares, f.err
}

func (f *fakeCompose) GetForEdit(_ context.Context, id int64) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.post
	p.ID = id
	return &p, nil
}

func (f *fakeCompose) ListDrafts(context.Context) ([]*models.Post, error) { return f.drafts, f.err }

func (f *fakeCompose) DeleteDraft(_ context.Context, id int64) error {
	f.deleted = id
	return f.err
}

func (f *fakeCompose) FetchLinkMeta(_ context.Context, rawURL string) (*models.LinkMeta, error) {
	return f.meta, f.err
}

type fakeTimeline struct {
	posts     []*models.Post
	total     int
	err       error
	gotType   models.PostType
	gotLimit  int
	gotOffset int
}

func (f *fakeTimeline) List(_ context.Context, t models.PostType, limit, offset int) ([]*models.Post, int, error) {
	f.gotType, f.gotLimit, f.gotOffset = t, limit, offset
	return f.posts, f.total, f.err
}

func (f *fakeTimeline) Get(_ context.Context, id int64) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: Post not found", services.ErrNotFound)
}

type fakeArticle struct {
	lastReq models.PublishArticleRequest
	post    *models.Post
	err     error
}

func (f *fakeArticle) Publish(_ context.Context, req models.PublishArticleRequest) (*models.Post, error) {
	f.lastReq = req
	return f.post, f.err
}

func samplePost(id int64) *models.Post {
	ts := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return &models.Post{
		ID:          id,
		Content:     "Привет, мир",
		PreviewText: "Привет, мир",
		Slug:        "privet-mir",
		Status:      models.StatusPublic,
		Type:        models.TypeText,
		Metadata:    models.Metadata{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(b)
}

// serve прогоняет запрос через mux, чтобы работали {id}.
func serve(pattern, method string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc(pattern, h).Methods(method)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
