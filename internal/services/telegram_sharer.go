package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/imax/maxua-public/internal/models"
)

const ChannelTelegram = "telegram"

// TelegramSender: транспорт Bot API (*telegram.Client).
type TelegramSender interface {
	SendMessage(ctx context.Context, text string) (json.RawMessage, error)
	SendPhoto(ctx context.Context, photoURL, caption string) (json.RawMessage, error)
}

type TelegramShare struct {
	Photo    bool            `json:"photo"`
	Response json.RawMessage `json:"response"`
}

type TelegramSharer struct {
	sender  TelegramSender
	siteURL string
}

func NewTelegramSharer(sender TelegramSender, siteURL string) *TelegramSharer {
	return &TelegramSharer{sender: sender, siteURL: strings.TrimRight(siteURL, "/")}
}

// Share отправляет пост в канал: с картинкой через sendPhoto, иначе sendMessage.
func (s *TelegramSharer) Share(ctx context.Context, post *models.Post) (*TelegramShare, error) {
	if post == nil || post.ID == 0 || post.Content == "" {
		return nil, shareErr(ChannelTelegram, errors.New("invalid post data"))
	}

	text := FormatTelegramMessage(post, s.siteURL)

	if img := post.Metadata.Get(models.MetaPostImage); img != "" {
		raw, err := s.sender.SendPhoto(ctx, img, text)
		if err != nil {
			return nil, shareErr(ChannelTelegram, err)
		}
		return &TelegramShare{Photo: true, Response: raw}, nil
	}

	raw, err := s.sender.SendMessage(ctx, text)
	if err != nil {
		return nil, shareErr(ChannelTelegram, err)
	}
	return &TelegramShare{Response: raw}, nil
}

var telegramEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// FormatTelegramMessage: текст поста (+ metadata.url, если его нет в тексте),
// экранирование & < > и жирная ссылка на пост в конце.
func FormatTelegramMessage(post *models.Post, siteURL string) string {
	content := post.Content
	if u := post.Metadata.Get(models.MetaURL); u != "" && !strings.Contains(content, u) {
		content += "\n\n" + u
	}
	link := strings.TrimRight(siteURL, "/") + post.Permalink()
	return telegramEscaper.Replace(content) + "\n\n<b>" + link + "</b>"
}
