package services

import (
	"context"
	"errors"
	"html"
	"strings"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/metrics"
	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ArticleService interface {
	// Publish создаёт статью сразу в public или правит существующую.
	// Статьи во внешние каналы не уходят.
	Publish(ctx context.Context, req models.PublishArticleRequest) (*models.Post, error)
}

type articleService struct {
	repo    repository.PostRepo
	policy  *bluemonday.Policy
	metrics *metrics.Metrics
}

func NewArticleService(repo repository.PostRepo, m *metrics.Metrics) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &articleService{repo: repo, policy: p, metrics: m}
}

// sanitizeBody чистит HTML внутри markdown статьи. Текст после Sanitize
// снова раскрывается, чтобы markdown-символы (> и &) не превращались в сущности;
// повтор до неподвижной точки не даёт закодированным тегам ожить.
func (s *articleService) sanitizeBody(body string) string {
	for i := 0; i < 4; i++ {
		next := html.UnescapeString(s.policy.Sanitize(body))
		if next == body {
			break
		}
		body = next
	}
	return strings.TrimSpace(body)
}

func (s *articleService) Publish(ctx context.Context, req models.PublishArticleRequest) (*models.Post, error) {
	log := logger.WithCtx(ctx)

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		log.Warn("Валидация не пройдена: заголовок или текст статьи пустые")
		return nil, validationErr("Title and content are required")
	}

	body := s.sanitizeBody(content)
	if body != content {
		log.Debug("Тело статьи очищено (sanitize)",
			zap.Int("raw_len", len(content)),
			zap.Int("clean_len", len(body)),
		)
	}
	if body == "" {
		log.Warn("Валидация не пройдена: после очистки текст статьи пуст")
		return nil, validationErr("Title and content are required")
	}

	preview := PreviewText(title)
	fields := repository.PostFields{
		Content:     body,
		PreviewText: preview,
		Slug:        Slugify(title),
		Type:        models.TypeArticle,
		Metadata:    models.Metadata{models.MetaTitle: title},
	}

	editing := req.EditPostID.Set
	log.Info("Публикация статьи",
		zap.String("title", title),
		zap.Bool("edit", editing),
		zap.Int64("edit_post_id", req.EditPostID.Value),
	)

	var post *models.Post
	err := s.repo.WithTx(ctx, func(w repository.PostWriter) error {
		var err error
		if editing {
			post, err = w.UpdatePublished(ctx, req.EditPostID.Value, fields)
		} else {
			post, err = w.Insert(ctx, models.StatusPublic, fields)
		}
		return err
	})
	if errors.Is(err, repository.ErrPostNotFound) {
		log.Warn("Статья для редактирования не найдена", zap.Int64("id", req.EditPostID.Value))
		return nil, notFoundErr("Article not found")
	}
	if err != nil {
		log.Error("Ошибка сохранения статьи (repo)", zap.Error(err))
		return nil, storageErr(err)
	}

	if editing {
		s.metrics.Transition("edit_article")
	} else {
		s.metrics.Transition("create_article")
	}
	log.Info("Статья сохранена", zap.Int64("id", post.ID), zap.String("slug", post.Slug))
	return post, nil
}
