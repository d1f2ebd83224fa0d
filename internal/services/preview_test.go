package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPreviewText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"short", "hello\nworld", "hello world"},
		{"exactly forty", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"cut at last space", "The quick brown fox jumps over the lazy dog again", "The quick brown fox jumps over the.."},
		{"no space hard cut", strings.Repeat("a", 50), strings.Repeat("a", 37) + ".."},
		{"leading space only", " " + strings.Repeat("b", 45), strings.Repeat("b", 36) + ".."},
		{"crlf collapsed", "line one\r\nline two", "line one line two"},
		{"trimmed", "  padded  ", "padded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PreviewText(tc.in))
		})
	}
}

func TestPreviewText_CountsRunes(t *testing.T) {
	in := strings.Repeat("я", 45)
	got := PreviewText(in)
	assert.Equal(t, strings.Repeat("я", 37)+"..", got)
	assert.True(t, utf8.ValidString(got))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":      "hello-world",
		"Привіт, світ":       "pryvit-svit",
		"Київ":               "kyiv",
		"Café déjà vu":       "cafe-deja-vu",
		"  --Go 1.23--  ":    "go-1-23",
		"!!!":                "post",
		"":                   "post",
		"Ёжик в тумане 2024": "ezhyk-v-tumane-2024",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}

	long := Slugify(strings.Repeat("ab ", 100))
	assert.LessOrEqual(t, len(long), slugMaxLen)
	assert.False(t, strings.HasSuffix(long, "-"))
}
