package services

import (
	"context"
	"math/rand"
	"sync/atomic"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/repository"

	"go.uber.org/zap"
)

// QuoteBook держит цитаты дня в памяти. Снимок неизменяемый,
// Reload подменяет его целиком.
type QuoteBook struct {
	repo   repository.QuoteRepo
	quotes atomic.Pointer[[]models.Quote]
}

func NewQuoteBook(repo repository.QuoteRepo) *QuoteBook {
	b := &QuoteBook{repo: repo}
	b.store(nil)
	return b
}

// NewStaticQuoteBook: книга без БД.
func NewStaticQuoteBook(quotes []models.Quote) *QuoteBook {
	b := &QuoteBook{}
	b.store(quotes)
	return b
}

func (b *QuoteBook) store(quotes []models.Quote) {
	snapshot := append([]models.Quote(nil), quotes...)
	b.quotes.Store(&snapshot)
}

// Load читает цитаты из БД. При ошибке прежний снимок остаётся.
func (b *QuoteBook) Load(ctx context.Context) (int, error) {
	if b.repo == nil {
		return b.Len(), nil
	}
	list, err := b.repo.GetAll(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("Не удалось загрузить цитаты", zap.Error(err))
		return 0, storageErr(err)
	}
	b.store(list)
	logger.WithCtx(ctx).Info("Цитаты загружены", zap.Int("count", len(list)))
	return len(list), nil
}

func (b *QuoteBook) Reload(ctx context.Context) (int, error) { return b.Load(ctx) }

func (b *QuoteBook) Len() int { return len(*b.quotes.Load()) }

// Random; false, если цитат нет.
func (b *QuoteBook) Random() (models.Quote, bool) {
	list := *b.quotes.Load()
	if len(list) == 0 {
		return models.Quote{}, false
	}
	return list[rand.Intn(len(list))], true
}
