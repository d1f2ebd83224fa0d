package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const DefaultAPIURL = "https://api.telegram.org"

var ErrNoToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// Client отправляет сообщения в один канал через Bot API.
type Client struct {
	apiURL     string
	token      string
	chatID     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient; minInterval ограничивает частоту отправок в канал (0 отключает ограничение).
func NewClient(apiURL, token, chatID string, minInterval time.Duration, httpClient *http.Client) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Client{
		apiURL:     apiURL,
		token:      token,
		chatID:     chatID,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

type messagePayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type photoPayload struct {
	ChatID    string `json:"chat_id"`
	Photo     string `json:"photo"`
	Caption   string `json:"caption"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage: sendMessage с parse_mode=HTML. Возвращает сырой ответ API.
func (c *Client) SendMessage(ctx context.Context, text string) (json.RawMessage, error) {
	return c.call(ctx, "sendMessage", messagePayload{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
}

// SendPhoto: sendPhoto по URL картинки, подпись в HTML.
func (c *Client) SendPhoto(ctx context.Context, photoURL, caption string) (json.RawMessage, error) {
	return c.call(ctx, "sendPhoto", photoPayload{
		ChatID:    c.chatID,
		Photo:     photoURL,
		Caption:   caption,
		ParseMode: "HTML",
	})
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, string(body))
	}
	return json.RawMessage(body), nil
}
