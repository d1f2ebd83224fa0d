package app

import (
	"context"
	"net/http"
	"time"

	"github.com/imax/maxua-public/internal/config"
	"github.com/imax/maxua-public/internal/db"
	"github.com/imax/maxua-public/internal/handlers"
	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/metrics"
	"github.com/imax/maxua-public/internal/repository"
	"github.com/imax/maxua-public/internal/routes"
	"github.com/imax/maxua-public/internal/services"
	"github.com/imax/maxua-public/internal/telegram"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InitApp поднимает пул, миграции и все слои. cleanup закрывает пул.
func InitApp(ctx context.Context, cfg *config.Config) (router *mux.Router, cleanup func(), err error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup = conn.Close

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
	}

	m := metrics.New()
	outbound := &http.Client{Timeout: 30 * time.Second}

	// Репозитории
	postRepo := repository.NewPostRepo(conn)
	quoteRepo := repository.NewQuoteRepo(conn)

	// Внешние каналы
	tg := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChannelID, cfg.TelegramInterval(), outbound)
	tgSharer := services.NewTelegramSharer(tg, cfg.SiteURL)
	bskySharer := services.NewBlueskySharer(cfg.BlueskyService, cfg.BlueskyUsername, cfg.BlueskyPassword, cfg.UserAgent, outbound)
	unfurler := services.NewLinkUnfurler(outbound, cfg.UserAgent, m)

	// Сервисы
	composeSvc := services.NewComposeService(postRepo, tgSharer, bskySharer, unfurler, m)
	articleSvc := services.NewArticleService(postRepo, m)
	timelineSvc := services.NewTimelineService(postRepo)
	authSvc := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL())

	quotes := services.NewQuoteBook(quoteRepo)
	if _, err := quotes.Load(ctx); err != nil {
		// без цитат сайт работает, /api/quotes/random отдаст 204
		logger.Log.Warn("Цитаты не загружены", zap.Error(err))
	}

	// Маршруты
	router = mux.NewRouter()
	routes.InitRoutes(router, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, cfg.TokenTTL()),
		Compose:  handlers.NewComposeHandler(composeSvc),
		Article:  handlers.NewArticleHandler(articleSvc),
		Timeline: handlers.NewTimelineHandler(timelineSvc),
		Quotes:   handlers.NewQuoteHandler(quotes),
		Logs:     handlers.NewAdminLogsHandler(cfg.LogDir),
		Metrics:  m.Handler(),
	}, cfg.JWTSecret)

	return router, cleanup, nil
}
