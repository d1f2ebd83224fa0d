package handlers

import (
	"net/http"

	"github.com/imax/maxua-public/internal/services"
	helpers "github.com/imax/maxua-public/internal/utils/helpers"
)

type QuoteHandler struct {
	book *services.QuoteBook
}

func NewQuoteHandler(book *services.QuoteBook) *QuoteHandler {
	return &QuoteHandler{book: book}
}

// Random
// @Summary      Случайная цитата дня
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  models.Quote
// @Success      204  "Цитат нет"
// @Router       /api/quotes/random [get]
func (h *QuoteHandler) Random(w http.ResponseWriter, r *http.Request) {
	q, ok := h.book.Random()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	helpers.JSON(w, http.StatusOK, q)
}

// Reload
// @Summary      Перечитать цитаты из БД
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      500  {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/quotes/reload [post]
func (h *QuoteHandler) Reload(w http.ResponseWriter, r *http.Request) {
	n, err := h.book.Reload(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to reload quotes")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]int{"count": n})
}
