package services

import (
	"context"
	"testing"

	"github.com/imax/maxua-public/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticlePublish_New(t *testing.T) {
	repo := newMemRepo()
	svc := NewArticleService(repo, nil)

	post, err := svc.Publish(context.Background(), models.PublishArticleRequest{
		Title:   "  Заметки о Go  ",
		Content: "# Заголовок\n\nТекст",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TypeArticle, post.Type)
	assert.Equal(t, models.StatusPublic, post.Status)
	assert.Equal(t, "Заметки о Go", post.Metadata.Get(models.MetaTitle))
	assert.Equal(t, "Заметки о Go", post.PreviewText)
	assert.Equal(t, "zametky-o-go", post.Slug)
	assert.Equal(t, "# Заголовок\n\nТекст", post.Content)
}

func TestArticlePublish_EditKeepsCreatedAt(t *testing.T) {
	repo := newMemRepo()
	orig := repo.seed(models.Post{
		ID: 9, Content: "old", Status: models.StatusPublic, Type: models.TypeArticle,
		Metadata: models.Metadata{models.MetaTitle: "Old"},
	})
	svc := NewArticleService(repo, nil)

	post, err := svc.Publish(context.Background(), models.PublishArticleRequest{
		Title: "New title", Content: "new body", EditPostID: models.OptionalID{Value: 9, Set: true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), post.ID)
	assert.Equal(t, "New title", post.Metadata.Get(models.MetaTitle))
	assert.Equal(t, "new-title", post.Slug)
	assert.True(t, post.CreatedAt.Equal(orig.CreatedAt))
	assert.Equal(t, 1, repo.count())
}

func TestArticlePublish_EditOnlyPublicArticles(t *testing.T) {
	repo := newMemRepo()
	repo.seed(models.Post{ID: 1, Content: "text post", Status: models.StatusPublic, Type: models.TypeText})
	svc := NewArticleService(repo, nil)

	_, err := svc.Publish(context.Background(), models.PublishArticleRequest{
		Title: "T", Content: "C", EditPostID: models.OptionalID{Value: 1, Set: true},
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Publish(context.Background(), models.PublishArticleRequest{
		Title: "T", Content: "C", EditPostID: models.OptionalID{Value: 404, Set: true},
	})
	require.ErrorIs(t, err, ErrNotFound)

	p, _ := repo.get(1)
	assert.Equal(t, "text post", p.Content)
}

func TestArticlePublish_RequiresTitleAndContent(t *testing.T) {
	svc := NewArticleService(newMemRepo(), nil)

	_, err := svc.Publish(context.Background(), models.PublishArticleRequest{Title: " ", Content: "body"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Publish(context.Background(), models.PublishArticleRequest{Title: "Title", Content: ""})
	require.ErrorIs(t, err, ErrValidation)
}

func TestArticlePublish_SanitizesBodyKeepsMarkdown(t *testing.T) {
	repo := newMemRepo()
	svc := NewArticleService(repo, nil)

	post, err := svc.Publish(context.Background(), models.PublishArticleRequest{
		Title: "Безопасность",
		Content: "# Заголовок\n\n> цитата & <b>жирный</b>\n\n" +
			"<script>alert(1)</script>\n\n&lt;script&gt;alert(2)&lt;/script&gt;",
	})
	require.NoError(t, err)
	assert.Equal(t, "# Заголовок\n\n> цитата & <b>жирный</b>", post.Content)
}

func TestArticlePublish_OnlyMarkupIsRejected(t *testing.T) {
	repo := newMemRepo()
	svc := NewArticleService(repo, nil)

	_, err := svc.Publish(context.Background(), models.PublishArticleRequest{
		Title: "Пусто", Content: "<script>alert(1)</script>",
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, repo.count())
}
