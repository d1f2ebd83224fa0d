package handlers

import (
	"net/http"

	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/services"
	helpers "github.com/imax/maxua-public/internal/utils/helpers"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

type articleResponse struct {
	Success bool         `json:"success"`
	Article *models.Post `json:"article"`
}

// Publish
// @Summary      Опубликовать статью
// @Description  Создаёт статью сразу опубликованной или правит существующую (editPostId). Дата создания при правке сохраняется.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body      models.PublishArticleRequest  true  "Статья"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      404   {object}  helpers.ErrorResponse
// @Failure      500   {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /article/publish [post]
func (h *ArticleHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req models.PublishArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	post, err := h.svc.Publish(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to publish article")
		return
	}
	helpers.JSON(w, http.StatusCreated, articleResponse{Success: true, Article: post})
}
