package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/metrics"
	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/repository"

	"go.uber.org/zap"
)

const draftsListLimit = 10

type TelegramPoster interface {
	Share(ctx context.Context, post *models.Post) (*TelegramShare, error)
}

type BlueskyPoster interface {
	Share(ctx context.Context, post *models.Post) (*BlueskyShare, error)
}

type ComposeService interface {
	// Submit сохраняет пост по таблице переходов и после коммита
	// рассылает новые публикации во внешние каналы.
	Submit(ctx context.Context, req models.ComposeRequest) (*models.Post, []ShareResult, error)
	GetForEdit(ctx context.Context, id int64) (*models.Post, error)
	ListDrafts(ctx context.Context) ([]*models.Post, error)
	DeleteDraft(ctx context.Context, id int64) error
	FetchLinkMeta(ctx context.Context, rawURL string) (*models.LinkMeta, error)
}

type composeService struct {
	repo     repository.PostRepo
	telegram TelegramPoster
	bluesky  BlueskyPoster
	unfurler LinkUnfurler
	metrics  *metrics.Metrics
}

func NewComposeService(
	repo repository.PostRepo,
	telegram TelegramPoster,
	bluesky BlueskyPoster,
	unfurler LinkUnfurler,
	m *metrics.Metrics,
) ComposeService {
	return &composeService{
		repo:     repo,
		telegram: telegram,
		bluesky:  bluesky,
		unfurler: unfurler,
		metrics:  m,
	}
}

type transition string

const (
	transitionCreateDraft     transition = "create_draft"
	transitionCreatePublished transition = "create_published"
	transitionUpdateDraft     transition = "update_draft"
	transitionPublishDraft    transition = "publish_draft"
	transitionEditPublished   transition = "edit_published"
)

// newPublication: только эти переходы порождают шеринг.
func (t transition) newPublication() bool {
	return t == transitionCreatePublished || t == transitionPublishDraft
}

func selectTransition(req models.ComposeRequest) (transition, error) {
	published := req.Status == "published"
	switch {
	case req.DraftID.Set && req.EditPostID.Set:
		return "", validationErr("draftId and editPostId are mutually exclusive")
	case req.EditPostID.Set && !published:
		return "", validationErr("published post cannot be turned back into a draft")
	case req.EditPostID.Set:
		return transitionEditPublished, nil
	case req.DraftID.Set && published:
		return transitionPublishDraft, nil
	case req.DraftID.Set:
		return transitionUpdateDraft, nil
	case published:
		return transitionCreatePublished, nil
	default:
		return transitionCreateDraft, nil
	}
}

func (s *composeService) Submit(ctx context.Context, req models.ComposeRequest) (*models.Post, []ShareResult, error) {
	log := logger.WithCtx(ctx)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		log.Warn("Пустой пост отклонён")
		return nil, nil, validationErr("No content found")
	}
	if req.Status != "draft" && req.Status != "published" {
		log.Warn("Некорректный статус", zap.String("status", req.Status))
		return nil, nil, validationErr("Invalid status")
	}
	tr, err := selectTransition(req)
	if err != nil {
		log.Warn("Некорректная комбинация идентификаторов", zap.Error(err))
		return nil, nil, err
	}

	meta := DecodeMetadata(req.Metadata)
	// этот ключ пишет только сервер после шеринга
	delete(meta, models.MetaBlueskyPostID)

	// trim только для проверки и превью, текст сохраняется как набран
	preview := PreviewText(content)
	fields := repository.PostFields{
		Content:     req.Content,
		PreviewText: preview,
		Slug:        Slugify(preview),
		Type:        models.TypeText,
		Metadata:    meta,
	}

	log.Info("Сохранение поста",
		zap.String("transition", string(tr)),
		zap.Int64("draft_id", req.DraftID.Value),
		zap.Int64("edit_post_id", req.EditPostID.Value),
		zap.Int("meta_keys", len(meta)),
	)

	var post *models.Post
	err = s.repo.WithTx(ctx, func(w repository.PostWriter) error {
		var err error
		switch tr {
		case transitionCreateDraft:
			post, err = w.Insert(ctx, models.StatusDraft, fields)
		case transitionCreatePublished:
			post, err = w.Insert(ctx, models.StatusPublic, fields)
		case transitionUpdateDraft:
			post, err = w.UpdateDraft(ctx, req.DraftID.Value, fields)
		case transitionPublishDraft:
			post, err = w.PublishDraft(ctx, req.DraftID.Value, fields)
		case transitionEditPublished:
			post, err = w.UpdatePublished(ctx, req.EditPostID.Value, fields)
		}
		return err
	})
	if errors.Is(err, repository.ErrPostNotFound) {
		log.Warn("Пост для перехода не найден", zap.String("transition", string(tr)))
		if tr == transitionEditPublished {
			return nil, nil, notFoundErr("Post not found or not published")
		}
		return nil, nil, notFoundErr("Draft not found")
	}
	if err != nil {
		log.Error("Ошибка сохранения поста (repo)", zap.Error(err))
		return nil, nil, storageErr(err)
	}
	s.metrics.Transition(string(tr))

	log.Info("Пост сохранён",
		zap.Int64("id", post.ID),
		zap.String("status", string(post.Status)),
		zap.String("transition", string(tr)),
	)

	var results []ShareResult
	if tr.newPublication() {
		results = s.share(ctx, post, req.ShareTelegram, req.ShareBluesky)
	}
	return post, results, nil
}

// share не влияет на результат сохранения: ошибки только логируются.
func (s *composeService) share(ctx context.Context, post *models.Post, toTelegram, toBluesky bool) []ShareResult {
	// запрос уже завершён с точки зрения БД, не обрываем рассылку вместе с HTTP
	ctx = context.WithoutCancel(ctx)
	log := logger.WithCtx(ctx).With(zap.Int64("post_id", post.ID))

	results := []ShareResult{
		{Channel: ChannelTelegram, Attempted: toTelegram && s.telegram != nil},
		{Channel: ChannelBluesky, Attempted: toBluesky && s.bluesky != nil},
	}

	if results[0].Attempted {
		start := time.Now()
		_, err := s.telegram.Share(ctx, post)
		results[0].OK, results[0].Err = err == nil, err
		s.metrics.Share(ChannelTelegram, err == nil)
		if err != nil {
			log.Error("Ошибка отправки в Telegram", zap.String("channel", ChannelTelegram), zap.Error(err))
		} else {
			log.Info("Пост отправлен в Telegram",
				zap.String("channel", ChannelTelegram), zap.Duration("took", time.Since(start)))
		}
	}

	if results[1].Attempted {
		res, err := s.bluesky.Share(ctx, post)
		results[1].OK, results[1].Err = err == nil, err
		s.metrics.Share(ChannelBluesky, err == nil)
		if err != nil {
			log.Error("Ошибка отправки в Bluesky", zap.String("channel", ChannelBluesky), zap.Error(err))
		} else if res.PostID != "" {
			if err := s.repo.SetMetadataKey(ctx, post.ID, models.MetaBlueskyPostID, res.PostID); err != nil {
				log.Warn("Не удалось сохранить bluesky_post_id", zap.String("channel", ChannelBluesky), zap.Error(err))
			} else {
				post.Metadata = post.Metadata.Clone()
				post.Metadata[models.MetaBlueskyPostID] = res.PostID
			}
		}
	}

	return results
}

func (s *composeService) GetForEdit(ctx context.Context, id int64) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	post, err := s.repo.GetPublic(ctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		log.Warn("Пост для редактирования не найден", zap.Int64("id", id))
		return nil, notFoundErr("Post not found")
	}
	if err != nil {
		log.Error("Ошибка получения поста (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, storageErr(err)
	}
	return post, nil
}

func (s *composeService) ListDrafts(ctx context.Context) ([]*models.Post, error) {
	list, err := s.repo.ListDrafts(ctx, draftsListLimit)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения черновиков (repo)", zap.Error(err))
		return nil, storageErr(err)
	}
	return list, nil
}

func (s *composeService) DeleteDraft(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	ok, err := s.repo.DeleteDraft(ctx, id)
	if err != nil {
		log.Error("Ошибка удаления черновика (repo)", zap.Int64("id", id), zap.Error(err))
		return storageErr(err)
	}
	if !ok {
		log.Warn("Черновик для удаления не найден", zap.Int64("id", id))
		return notFoundErr("Draft not found")
	}
	log.Info("Черновик удалён", zap.Int64("id", id))
	return nil
}

func (s *composeService) FetchLinkMeta(ctx context.Context, rawURL string) (*models.LinkMeta, error) {
	if err := ValidateLinkURL(rawURL); err != nil {
		return nil, err
	}
	meta := s.unfurler.FetchMetadata(ctx, strings.TrimSpace(rawURL))
	if meta == nil {
		return nil, errors.New("failed to fetch link metadata")
	}
	return meta, nil
}
