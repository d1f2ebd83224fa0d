package services

import (
	"context"
	"errors"
	"time"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthorSubject: subject единственного автора в токене.
const AuthorSubject = "author"

var ErrInvalidCredentials = errors.New("неверный пароль")

type AuthService struct {
	passwordHash []byte
	secret       string
	ttl          time.Duration
}

func NewAuthService(passwordHash, secret string, ttl time.Duration) *AuthService {
	return &AuthService{passwordHash: []byte(passwordHash), secret: secret, ttl: ttl}
}

// Login сверяет пароль с bcrypt-хэшем из конфига и выдаёт access-токен.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	log := logger.WithCtx(ctx)
	if len(s.passwordHash) == 0 || s.secret == "" {
		log.Error("Вход отключён: не заданы ADMIN_PASSWORD_HASH или JWT_SECRET")
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		log.Warn("Неудачная попытка входа")
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.secret, AuthorSubject, s.ttl)
	if err != nil {
		log.Error("Ошибка генерации токена", zap.Error(err))
		return "", err
	}
	log.Info("Автор вошёл", zap.Duration("ttl", s.ttl))
	return token, nil
}
