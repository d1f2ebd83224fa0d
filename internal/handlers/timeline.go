package handlers

import (
	"net/http"

	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/services"
	helpers "github.com/imax/maxua-public/internal/utils/helpers"
)

type TimelineHandler struct {
	svc services.TimelineService
}

func NewTimelineHandler(svc services.TimelineService) *TimelineHandler {
	return &TimelineHandler{svc: svc}
}

type timelineResponse struct {
	Posts []models.PostView `json:"posts"`
	Total int               `json:"total"`
}

// List
// @Summary      Лента
// @Description  Опубликованные посты, новые первыми.
// @Tags         timeline
// @Produce      json
// @Param        type    query     string  false  "text|article|link|quote|podcast"
// @Param        limit   query     int     false  "По умолчанию 10, максимум 50"
// @Param        offset  query     int     false  "Смещение"
// @Success      200     {object}  timelineResponse
// @Failure      400     {object}  helpers.ErrorResponse
// @Router       /api/posts [get]
func (h *TimelineHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var postType models.PostType
	if raw := q.Get("type"); raw != "" {
		t, ok := models.ParsePostType(raw)
		if !ok {
			helpers.Error(w, http.StatusBadRequest, "Unknown post type")
			return
		}
		postType = t
	}
	limit := clampAtoi(q.Get("limit"), services.DefaultPageSize, 1, services.MaxPageSize)
	offset := clampAtoi(q.Get("offset"), 0, 0, 1_000_000)

	list, total, err := h.svc.List(r.Context(), postType, limit, offset)
	if err != nil {
		writeServiceError(w, err, "Failed to load timeline")
		return
	}

	views := make([]models.PostView, 0, len(list))
	for _, p := range list {
		views = append(views, models.NewPostView(p))
	}
	helpers.JSON(w, http.StatusOK, timelineResponse{Posts: views, Total: total})
}

// Get
// @Summary      Пост по ID
// @Tags         timeline
// @Produce      json
// @Param        id   path      int  true  "ID поста"
// @Success      200  {object}  models.PostView
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *TimelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to load post")
		return
	}
	helpers.JSON(w, http.StatusOK, models.NewPostView(post))
}
