package services

import (
	"context"
	"errors"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

type TimelineService interface {
	List(ctx context.Context, postType models.PostType, limit, offset int) ([]*models.Post, int, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
}

type timelineService struct {
	repo repository.PostRepo
}

func NewTimelineService(repo repository.PostRepo) TimelineService {
	return &timelineService{repo: repo}
}

func (s *timelineService) List(ctx context.Context, postType models.PostType, limit, offset int) ([]*models.Post, int, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	log := logger.WithCtx(ctx)
	log.Debug("Получение ленты",
		zap.String("type", string(postType)),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	list, total, err := s.repo.ListPublic(ctx, postType, limit, offset)
	if err != nil {
		log.Error("Ошибка получения ленты (repo)", zap.Error(err))
		return nil, 0, storageErr(err)
	}
	return list, total, nil
}

func (s *timelineService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repo.GetPublic(ctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, notFoundErr("Post not found")
	}
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения поста (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, storageErr(err)
	}
	return post, nil
}
