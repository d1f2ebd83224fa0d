package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineList(t *testing.T) {
	svc := &fakeTimeline{posts: []*models.Post{samplePost(2), samplePost(1)}, total: 12}
	h := NewTimelineHandler(svc)

	rec := serve("/api/posts", http.MethodGet, h.List,
		httptest.NewRequest(http.MethodGet, "/api/posts?type=Article&limit=500&offset=-3", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Posts []struct {
			ID        int64  `json:"id"`
			Permalink string `json:"permalink"`
		} `json:"posts"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Total)
	require.Len(t, body.Posts, 2)
	assert.Equal(t, "/p/privet-mir-2", body.Posts[0].Permalink)

	assert.Equal(t, models.TypeArticle, svc.gotType)
	assert.Equal(t, services.MaxPageSize, svc.gotLimit)
	assert.Equal(t, 0, svc.gotOffset)
}

func TestTimelineList_Defaults(t *testing.T) {
	svc := &fakeTimeline{}
	h := NewTimelineHandler(svc)

	rec := serve("/api/posts", http.MethodGet, h.List, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"posts":[],"total":0}`, rec.Body.String())
	assert.Equal(t, models.PostType(""), svc.gotType)
	assert.Equal(t, services.DefaultPageSize, svc.gotLimit)
}

func TestTimelineList_UnknownType(t *testing.T) {
	h := NewTimelineHandler(&fakeTimeline{})
	rec := serve("/api/posts", http.MethodGet, h.List,
		httptest.NewRequest(http.MethodGet, "/api/posts?type=video", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimelineGet(t *testing.T) {
	h := NewTimelineHandler(&fakeTimeline{posts: []*models.Post{samplePost(5)}})

	rec := serve("/api/posts/{id}", http.MethodGet, h.Get, httptest.NewRequest(http.MethodGet, "/api/posts/5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"permalink":"/p/privet-mir-5"`)

	rec = serve("/api/posts/{id}", http.MethodGet, h.Get, httptest.NewRequest(http.MethodGet, "/api/posts/6", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
