package handlers

import (
	"net/http"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/services"
	helpers "github.com/imax/maxua-public/internal/utils/helpers"

	"go.uber.org/zap"
)

type ComposeHandler struct {
	svc services.ComposeService
}

func NewComposeHandler(svc services.ComposeService) *ComposeHandler {
	return &ComposeHandler{svc: svc}
}

// Submit
// @Summary      Создать или обновить пост
// @Description  Черновик, публикация, публикация черновика (draftId) или правка опубликованного (editPostId). Новые публикации по флагам уходят в Telegram и Bluesky.
// @Tags         compose
// @Accept       json
// @Produce      json
// @Param        body  body      models.ComposeRequest  true  "Пост"
// @Success      201   {object}  models.Post
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      404   {object}  helpers.ErrorResponse
// @Failure      500   {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /compose/post [post]
func (h *ComposeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ComposeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, shares, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to save post")
		return
	}
	for _, s := range shares {
		if s.Attempted && !s.OK {
			logger.WithCtx(r.Context()).Warn("Шеринг не удался, пост сохранён",
				zap.String("channel", s.Channel), zap.Int64("id", post.ID))
		}
	}
	helpers.JSON(w, http.StatusCreated, post)
}

// GetPost
// @Summary      Пост для редактирования
// @Tags         compose
// @Produce      json
// @Param        id   path      int  true  "ID поста"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /compose/post/{id} [get]
func (h *ComposeHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	post, err := h.svc.GetForEdit(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to load post")
		return
	}
	helpers.JSON(w, http.StatusOK, post)
}

// Drafts
// @Summary      Последние черновики
// @Description  До 10 черновиков, новые первыми.
// @Tags         compose
// @Produce      json
// @Success      200  {array}   models.Post
// @Failure      500  {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /compose/drafts [get]
func (h *ComposeHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListDrafts(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to load drafts")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// DeleteDraft
// @Summary      Удалить черновик
// @Tags         compose
// @Produce      json
// @Param        id   path      int  true  "ID черновика"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /compose/drafts/{id} [delete]
func (h *ComposeHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid draft id")
		return
	}
	if err := h.svc.DeleteDraft(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete draft")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// FetchLinkMeta
// @Summary      Метаданные ссылки
// @Description  Заголовок, описание и картинка страницы (og/twitter/title).
// @Tags         compose
// @Accept       json
// @Produce      json
// @Param        body  body      models.LinkMetaRequest  true  "URL"
// @Success      200   {object}  models.LinkMeta
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      500   {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /compose/fetch-link-meta [post]
func (h *ComposeHandler) FetchLinkMeta(w http.ResponseWriter, r *http.Request) {
	var req models.LinkMetaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	meta, err := h.svc.FetchLinkMeta(r.Context(), req.URL)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch link metadata")
		return
	}
	helpers.JSON(w, http.StatusOK, meta)
}
