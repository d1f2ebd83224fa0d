package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/imax/maxua-public/internal/logger"
	"github.com/imax/maxua-public/internal/metrics"
	"github.com/imax/maxua-public/internal/models"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	unfurlTimeout  = 5 * time.Second
	unfurlMaxBytes = 2 << 20
)

type LinkUnfurler interface {
	// FetchMetadata возвращает nil, если метаданные получить не удалось. Ошибок наружу не отдаёт.
	FetchMetadata(ctx context.Context, rawURL string) *models.LinkMeta
}

type linkUnfurler struct {
	client    *http.Client
	userAgent string
	metrics   *metrics.Metrics
}

func NewLinkUnfurler(client *http.Client, userAgent string, m *metrics.Metrics) LinkUnfurler {
	if client == nil {
		client = &http.Client{}
	}
	return &linkUnfurler{
		client:    client,
		userAgent: userAgent,
		metrics:   m,
	}
}

func (u *linkUnfurler) FetchMetadata(ctx context.Context, rawURL string) *models.LinkMeta {
	log := logger.WithCtx(ctx).With(zap.String("url", rawURL))

	ctx, cancel := context.WithTimeout(ctx, unfurlTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Warn("Некорректный URL для метаданных", zap.Error(err))
		u.metrics.Unfurl("error")
		return nil
	}
	req.Header.Set("User-Agent", u.userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		log.Warn("Не удалось загрузить страницу для метаданных", zap.Error(err))
		u.metrics.Unfurl("error")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("Страница вернула не-2xx", zap.Int("status", resp.StatusCode))
		u.metrics.Unfurl("http_error")
		return nil
	}

	page, err := parsePageMeta(io.LimitReader(resp.Body, unfurlMaxBytes))
	if err != nil {
		log.Warn("Ошибка разбора HTML", zap.Error(err))
		u.metrics.Unfurl("error")
		return nil
	}

	meta := &models.LinkMeta{
		Title:       u.clean(page.first("og:title", "twitter:title")),
		Description: u.clean(page.first("og:description", "twitter:description", "description")),
	}
	if meta.Title == "" {
		meta.Title = u.clean(page.title)
	}
	if meta.Title == "" {
		meta.Title = rawURL
	}
	if img := page.first("og:image", "twitter:image"); img != "" {
		img = resolveURL(resp.Request.URL, img)
		meta.Image = &img
	}

	u.metrics.Unfurl("ok")
	log.Debug("Метаданные ссылки получены", zap.String("title", meta.Title))
	return meta
}

// clean: токенизатор уже раскрыл сущности, текст отдаётся как есть.
func (u *linkUnfurler) clean(s string) string {
	return strings.TrimSpace(s)
}

type pageMeta struct {
	tags  map[string]string
	title string
}

func (p pageMeta) first(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(p.tags[k]); v != "" {
			return v
		}
	}
	return ""
}

// parsePageMeta собирает <meta property|name=... content=...> и <title>.
// Порядок атрибутов не важен, сущности декодирует токенайзер.
func parsePageMeta(r io.Reader) (pageMeta, error) {
	page := pageMeta{tags: map[string]string{}}
	z := html.NewTokenizer(r)
	inTitle := false
	var title strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && err != io.EOF {
				return page, err
			}
			page.title = strings.TrimSpace(title.String())
			return page, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "meta":
				if !hasAttr {
					continue
				}
				var key, content string
				hasContent := false
				for {
					k, v, more := z.TagAttr()
					switch string(k) {
					case "property", "name":
						if key == "" {
							key = strings.ToLower(strings.TrimSpace(string(v)))
						}
					case "content":
						content = string(v)
						hasContent = true
					}
					if !more {
						break
					}
				}
				if key != "" && hasContent {
					if _, seen := page.tags[key]; !seen {
						page.tags[key] = content
					}
				}
			case "title":
				if tt == html.StartTagToken && title.Len() == 0 {
					inTitle = true
				}
			}

		case html.TextToken:
			if inTitle {
				title.Write(z.Text())
			}

		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "title" {
				inTitle = false
			}
		}
	}
}

func resolveURL(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// ValidateLinkURL: только абсолютные http(s) ссылки.
func ValidateLinkURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validationErr(fmt.Sprintf("invalid url %q", raw))
	}
	return nil
}
