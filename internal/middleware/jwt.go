package middleware

import (
	"net/http"
	"strings"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/reqctx"
	"github.com/imax/maxua-public/internal/utils"
	helpers "github.com/imax/maxua-public/internal/utils/helpers"

	"go.uber.org/zap"
)

// JWTAuth пропускает только запросы с валидным Bearer-токеном автора.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			subject, err := utils.ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := reqctx.WithUserID(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
