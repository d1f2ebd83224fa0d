package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/services"
	helpers "github.com/imax/maxua-public/internal/utils/helpers"
)

type AuthHandler struct {
	svc *services.AuthService
	ttl time.Duration
}

func NewAuthHandler(svc *services.AuthService, ttl time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, ttl: ttl}
}

// Login
// @Summary      Вход автора
// @Description  Проверяет пароль и выдаёт access-токен для compose и админских маршрутов.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Пароль"
// @Success      200   {object}  models.LoginResponse
// @Failure      400   {object}  helpers.ErrorResponse
// @Failure      401   {object}  helpers.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	token, err := h.svc.Login(r.Context(), req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		helpers.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	helpers.JSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.ttl.Seconds()),
	})
}
