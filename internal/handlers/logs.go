package handlers

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	helpers "github.com/imax/maxua-public/internal/utils/helpers"
)

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AdminLogsHandler читает JSON-логи lumberjack: текущий app.log и
// ротированные app-<timestamp>.log[.gz].
type AdminLogsHandler struct {
	LogDir    string
	Retention int
	now       func() time.Time
}

func NewAdminLogsHandler(logDir string) *AdminLogsHandler {
	if logDir == "" {
		logDir = "logs"
	}
	return &AdminLogsHandler{LogDir: logDir, Retention: 14, now: time.Now}
}

// ListDays
// @Summary      Дни, за которые есть логи
// @Tags         admin-logs
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Security     ApiKeyAuth
// @Router       /api/admin/logs/days [get]
func (h *AdminLogsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	today := h.now().Local()
	days := make([]string, 0)
	for i := 0; i < h.Retention; i++ {
		d := today.AddDate(0, 0, -i).Format("2006-01-02")
		if files, err := h.filesForDay(d); err == nil && len(files) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	helpers.JSON(w, http.StatusOK, map[string][]string{"days": days})
}

// GetLogs
// @Summary      Логи за день
// @Description  Фильтры: уровень (CSV), подстрока, канал шеринга, id поста. Пагинация курсором по номеру строки.
// @Tags         admin-logs
// @Produce      json
// @Param        day      query  string  true   "YYYY-MM-DD"
// @Param        level    query  string  false  "CSV: debug,info,warn,error"
// @Param        q        query  string  false  "Подстрока"
// @Param        channel  query  string  false  "telegram|bluesky"
// @Param        post_id  query  int     false  "ID поста"
// @Param        limit    query  int     false  "По умолчанию 200, максимум 1000"
// @Param        cursor   query  int     false  "Номер строки"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	day := q.Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "bad day")
		return
	}

	f := logFilter{
		levels:  upperSet(q.Get("level")),
		needle:  strings.ToLower(strings.TrimSpace(q.Get("q"))),
		channel: strings.ToLower(strings.TrimSpace(q.Get("channel"))),
		postID:  strings.TrimSpace(q.Get("post_id")),
	}
	limit := clampAtoi(q.Get("limit"), 200, 1, 1000)
	cursor := clampAtoi(q.Get("cursor"), 0, 0, 10_000_000)

	lineNo := 0
	items := make([]json.RawMessage, 0)
	err := h.eachLine(day, func(raw []byte) bool {
		lineNo++
		if lineNo <= cursor {
			return true
		}
		if f.match(raw) {
			items = append(items, append(json.RawMessage(nil), raw...))
		}
		return len(items) < limit
	})
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "day not found")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]any{
		"day":        day,
		"items":      items,
		"nextCursor": lineNo,
	})
}

type logFilter struct {
	levels  map[string]bool
	needle  string
	channel string
	postID  string
}

func (f logFilter) match(raw []byte) bool {
	if f.needle != "" && !strings.Contains(strings.ToLower(string(raw)), f.needle) {
		return false
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	if len(f.levels) > 0 && !f.levels[strings.ToUpper(str(obj["level"]))] {
		return false
	}
	if f.channel != "" && strings.ToLower(str(obj["channel"])) != f.channel {
		return false
	}
	if f.postID != "" && jsonNumber(obj["post_id"]) != f.postID {
		return false
	}
	return true
}

func (h *AdminLogsHandler) filesForDay(day string) ([]string, error) {
	entries, err := os.ReadDir(h.LogDir)
	if err != nil {
		return nil, err
	}
	today := h.now().Local().Format("2006-01-02")

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case name == "app.log" && day == today:
			files = append(files, filepath.Join(h.LogDir, name))
		case strings.HasPrefix(name, "app-"+day) &&
			(strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".log.gz")):
			files = append(files, filepath.Join(h.LogDir, name))
		}
	}
	// ротированные файлы по времени, app.log последним
	sort.Slice(files, func(i, j int) bool {
		bi, bj := filepath.Base(files[i]), filepath.Base(files[j])
		if bi == "app.log" || bj == "app.log" {
			return bj == "app.log" && bi != "app.log"
		}
		return bi < bj
	})
	return files, nil
}

func (h *AdminLogsHandler) eachLine(day string, handle func([]byte) bool) error {
	files, err := h.filesForDay(day)
	if err != nil || len(files) == 0 {
		return os.ErrNotExist
	}
	for _, path := range files {
		if !readLines(path, handle) {
			break
		}
	}
	return nil
}

// readLines возвращает false, если handle попросил остановиться.
func readLines(path string, handle func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return true
		}
		defer gz.Close()
		reader = gz
	}

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !handle(sc.Bytes()) {
			return false
		}
	}
	return true
}

func upperSet(csv string) map[string]bool {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	m := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[strings.ToUpper(p)] = true
		}
	}
	return m
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func jsonNumber(v any) string {
	switch x := v.(type) {
	case float64:
		b, _ := json.Marshal(x)
		return string(b)
	case string:
		return x
	}
	return ""
}
