package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	previewMax    = 40
	previewCut    = 37
	previewSuffix = ".."
	slugMaxLen    = 80
)

var (
	newlinesRe  = regexp.MustCompile(`[\r\n]+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// PreviewText: короткая подпись для списков и навигации.
// Длиннее 40 символов режется по последнему пробелу не дальше 37-й позиции
// (или жёстко на 37) и получает "..". Переводы строк схлопываются в пробел.
func PreviewText(s string) string {
	runes := []rune(s)
	out := s
	if len(runes) > previewMax {
		cut := lastSpaceAtOrBefore(runes, previewCut)
		if cut <= 0 {
			cut = previewCut
		}
		out = string(runes[:cut]) + previewSuffix
	}
	out = newlinesRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func lastSpaceAtOrBefore(runes []rune, pos int) int {
	if pos >= len(runes) {
		pos = len(runes) - 1
	}
	for i := pos; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

// кириллица -> латиница, остальное снимается через NFD
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g", 'д': "d", 'е': "e", 'є': "ie",
	'ё': "e", 'ж': "zh", 'з': "z", 'и': "y", 'і': "i", 'ї': "i", 'й': "i", 'к': "k",
	'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "iu", 'я': "ia",
}

// Slugify делает URL-безопасную строку [a-z0-9-] из произвольного текста.
// Уникальность не гарантируется: в ссылке slug всегда идёт вместе с id.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// транслитерация до NFD: иначе й, ї, ё распадутся на букву и диакритику
	var lat strings.Builder
	for _, r := range s {
		if t, ok := translit[r]; ok {
			lat.WriteString(t)
			continue
		}
		lat.WriteRune(r)
	}

	var b strings.Builder
	for _, r := range norm.NFD.String(lat.String()) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > slugMaxLen {
		s = strings.Trim(s[:slugMaxLen], "-")
	}
	if s == "" {
		s = "post"
	}
	return s
}
