package routes

import (
	"net/http"

	"github.com/imax/maxua-public/internal/handlers"
	"github.com/imax/maxua-public/internal/middleware"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Compose  *handlers.ComposeHandler
	Article  *handlers.ArticleHandler
	Timeline *handlers.TimelineHandler
	Quotes   *handlers.QuoteHandler
	Logs     *handlers.AdminLogsHandler
	Metrics  http.Handler
}

func InitRoutes(router *mux.Router, h Handlers, jwtSecret string) {
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logging)
	auth := middleware.JWTAuth(jwtSecret)

	if h.Metrics != nil {
		router.Handle("/metrics", h.Metrics).Methods(http.MethodGet)
	}
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/posts", h.Timeline.List).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", h.Timeline.Get).Methods(http.MethodGet)
	api.HandleFunc("/quotes/random", h.Quotes.Random).Methods(http.MethodGet)

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth)
	protected.HandleFunc("/article/publish", h.Article.Publish).Methods(http.MethodPost)
	protected.HandleFunc("/quotes/reload", h.Quotes.Reload).Methods(http.MethodPost)
	protected.HandleFunc("/admin/logs/days", h.Logs.ListDays).Methods(http.MethodGet)
	protected.HandleFunc("/admin/logs", h.Logs.GetLogs).Methods(http.MethodGet)

	compose := router.PathPrefix("/compose").Subrouter()
	compose.Use(auth)
	compose.HandleFunc("/post", h.Compose.Submit).Methods(http.MethodPost)
	compose.HandleFunc("/post/{id:[0-9]+}", h.Compose.GetPost).Methods(http.MethodGet)
	compose.HandleFunc("/drafts", h.Compose.Drafts).Methods(http.MethodGet)
	compose.HandleFunc("/drafts/{id:[0-9]+}", h.Compose.DeleteDraft).Methods(http.MethodDelete)
	compose.HandleFunc("/fetch-link-meta", h.Compose.FetchLinkMeta).Methods(http.MethodPost)

	article := router.PathPrefix("/article").Subrouter()
	article.Use(auth)
	article.HandleFunc("/publish", h.Article.Publish).Methods(http.MethodPost)
}
