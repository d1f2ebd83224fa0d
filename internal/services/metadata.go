package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/imax/maxua-public/internal/models"
)

var metaKeyRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// placeholderKey приходит из пустой строки формы в редакторе.
const placeholderKey = "key"

// ValidateMetadata оставляет только ключи [a-zA-Z0-9_]+ с непустыми значениями.
// Никогда не падает: плохие записи просто отбрасываются.
func ValidateMetadata(in map[string]any) models.Metadata {
	out := make(models.Metadata, len(in))
	for k, v := range in {
		if k == placeholderKey || !metaKeyRe.MatchString(k) {
			continue
		}
		s := metaString(v)
		if s == "" {
			continue
		}
		out[k] = s
	}
	return out
}

// DecodeMetadata принимает поле metadata как есть. Всё, что не JSON-объект
// (строка, массив, null), считается пустыми метаданными.
func DecodeMetadata(raw json.RawMessage) models.Metadata {
	var in map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			in = nil
		}
	}
	return ValidateMetadata(in)
}

func metaString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
