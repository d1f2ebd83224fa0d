package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticlePublish(t *testing.T) {
	post := samplePost(11)
	post.Type = models.TypeArticle
	svc := &fakeArticle{post: post}
	h := NewArticleHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/article/publish",
		jsonBody(t, map[string]any{"title": "Заметки", "content": "# Текст", "editPostId": 11}))
	rec := serve("/article/publish", http.MethodPost, h.Publish, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Success bool        `json:"success"`
		Article models.Post `json:"article"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, models.TypeArticle, body.Article.Type)
	assert.Equal(t, "Заметки", svc.lastReq.Title)
	assert.Equal(t, int64(11), svc.lastReq.EditPostID.Value)
}

func TestArticlePublish_Errors(t *testing.T) {
	h := NewArticleHandler(&fakeArticle{})
	rec := serve("/article/publish", http.MethodPost, h.Publish,
		httptest.NewRequest(http.MethodPost, "/article/publish", jsonBody(t, map[string]any{"title": "Без текста"})))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h = NewArticleHandler(&fakeArticle{err: fmt.Errorf("%w: Article not found", services.ErrNotFound)})
	rec = serve("/article/publish", http.MethodPost, h.Publish,
		httptest.NewRequest(http.MethodPost, "/article/publish",
			jsonBody(t, map[string]any{"title": "T", "content": "C", "editPostId": 99})))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
