package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string
	// RunMigrations применяет goose-миграции при старте.
	RunMigrations bool

	JWTSecret         string
	AdminPasswordHash string
	AccessTokenTTL    string

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	SiteURL   string
	UserAgent string

	TelegramBotToken    string
	TelegramChannelID   string
	TelegramAPIURL      string
	TelegramMinInterval string

	BlueskyUsername string
	BlueskyPassword string
	BlueskyService  string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует, чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:          def(os.Getenv("PORT"), "8080"),
		DbHost:        os.Getenv("DB_HOST"),
		DbPort:        def(os.Getenv("DB_PORT"), "5432"),
		DbUser:        os.Getenv("DB_USER"),
		DbPass:        os.Getenv("DB_PASSWORD"),
		DbName:        os.Getenv("DB_NAME"),
		DbSSLMode:     def(os.Getenv("DB_SSLMODE"), "disable"),
		RunMigrations: strings.EqualFold(def(os.Getenv("MIGRATIONS"), "true"), "true"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AccessTokenTTL:    def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "720h"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		SiteURL:   strings.TrimRight(def(os.Getenv("SITE_URL"), "https://maxua.com"), "/"),
		UserAgent: def(os.Getenv("USER_AGENT"), "MaxUA-Microblog/1.0"),

		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChannelID:   def(os.Getenv("TELEGRAM_CHANNEL_ID"), "-1002652195351"),
		TelegramAPIURL:      strings.TrimRight(def(os.Getenv("TELEGRAM_API_URL"), "https://api.telegram.org"), "/"),
		TelegramMinInterval: def(os.Getenv("TELEGRAM_MIN_INTERVAL"), "3s"),

		BlueskyUsername: os.Getenv("BLUESKY_USERNAME"),
		BlueskyPassword: os.Getenv("BLUESKY_PASSWORD"),
		BlueskyService:  strings.TrimRight(def(os.Getenv("BLUESKY_SERVICE"), "https://bsky.social"), "/"),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}
	if c.AdminPasswordHash == "" {
		warnings = append(warnings, "ADMIN_PASSWORD_HASH is empty, login is disabled")
	}

	// Шеринг: без ключей падает только соответствующий канал
	if c.TelegramBotToken == "" {
		warnings = append(warnings, "TELEGRAM_BOT_TOKEN is not set")
	}
	if c.BlueskyUsername == "" || c.BlueskyPassword == "" {
		warnings = append(warnings, "BLUESKY_USERNAME or BLUESKY_PASSWORD is not set")
	}

	if _, perr := time.ParseDuration(c.AccessTokenTTL); perr != nil {
		warnings = append(warnings, "ACCESS_TOKEN_EXPIRY is invalid, using 720h")
	}

	return warnings, nil
}

// TokenTTL: срок жизни access-токена с фолбэком.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || d <= 0 {
		return 720 * time.Hour
	}
	return d
}

// TelegramInterval: минимальный интервал между отправками в канал.
func (c *Config) TelegramInterval() time.Duration {
	d, err := time.ParseDuration(c.TelegramMinInterval)
	if err != nil || d < 0 {
		return 3 * time.Second
	}
	return d
}

// GetDSN: полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe: DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
