package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/imax/maxua-public/internal/models"
	"github.com/imax/maxua-public/internal/repository"
)

// memRepo: PostRepo в памяти. WithTx откатывает изменения при ошибке fn.
type memRepo struct {
	mu       sync.Mutex
	rows     map[int64]*models.Post
	nextID   int64
	clock    time.Time
	failWith error // если задано, любая запись в транзакции падает

	txCount     int
	metaPatches map[int64]map[string]string
}

func newMemRepo() *memRepo {
	return &memRepo{
		rows:        map[int64]*models.Post{},
		nextID:      1,
		clock:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		metaPatches: map[int64]map[string]string{},
	}
}

func (r *memRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

// seed кладёт строку напрямую, минуя транзакцию.
func (r *memRepo) seed(p models.Post) *models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	if p.Metadata == nil {
		p.Metadata = models.Metadata{}
	}
	if p.Type == "" {
		p.Type = models.TypeText
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.tick()
	}
	p.UpdatedAt = p.CreatedAt
	cp := p
	r.rows[p.ID] = &cp
	return copyPost(&cp)
}

func (r *memRepo) get(id int64) (*models.Post, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, false
	}
	return copyPost(p), true
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func copyPost(p *models.Post) *models.Post {
	cp := *p
	cp.Metadata = p.Metadata.Clone()
	return &cp
}

func (r *memRepo) WithTx(ctx context.Context, fn func(w repository.PostWriter) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txCount++

	snapshot := make(map[int64]*models.Post, len(r.rows))
	for id, p := range r.rows {
		snapshot[id] = copyPost(p)
	}
	nextID := r.nextID

	if err := fn(&memWriter{r: r}); err != nil {
		r.rows = snapshot
		r.nextID = nextID
		return err
	}
	return nil
}

func (r *memRepo) GetPublic(ctx context.Context, id int64) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.Status != models.StatusPublic {
		return nil, repository.ErrPostNotFound
	}
	return copyPost(p), nil
}

func (r *memRepo) ListPublic(ctx context.Context, postType models.PostType, limit, offset int) ([]*models.Post, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Post
	for _, p := range r.rows {
		if p.Status == models.StatusPublic && (postType == "" || p.Type == postType) {
			all = append(all, copyPost(p))
		}
	}
	sortNewest(all)
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *memRepo) ListDrafts(ctx context.Context, limit int) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*models.Post, 0)
	for _, p := range r.rows {
		if p.Status == models.StatusDraft {
			list = append(list, copyPost(p))
		}
	}
	sortNewest(list)
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *memRepo) DeleteDraft(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.Status != models.StatusDraft {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *memRepo) SetMetadataKey(ctx context.Context, id int64, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return repository.ErrPostNotFound
	}
	p.Metadata[key] = value
	if r.metaPatches[id] == nil {
		r.metaPatches[id] = map[string]string{}
	}
	r.metaPatches[id][key] = value
	return nil
}

func sortNewest(list []*models.Post) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// memWriter работает под блокировкой WithTx.
type memWriter struct{ r *memRepo }

var errWriteFailed = errors.New("write failed")

func (w *memWriter) apply(p *models.Post, f repository.PostFields) {
	p.Content = f.Content
	p.PreviewText = f.PreviewText
	p.Slug = f.Slug
	p.Type = f.Type
	p.Metadata = f.Metadata.Clone()
}

func (w *memWriter) Insert(ctx context.Context, status models.PostStatus, f repository.PostFields) (*models.Post, error) {
	if w.r.failWith != nil {
		return nil, w.r.failWith
	}
	now := w.r.tick()
	p := &models.Post{ID: w.r.nextID, Status: status, CreatedAt: now, UpdatedAt: now}
	w.apply(p, f)
	w.r.nextID++
	w.r.rows[p.ID] = p
	return copyPost(p), nil
}

func (w *memWriter) UpdateDraft(ctx context.Context, id int64, f repository.PostFields) (*models.Post, error) {
	if w.r.failWith != nil {
		return nil, w.r.failWith
	}
	p, ok := w.r.rows[id]
	if !ok || p.Status != models.StatusDraft {
		return nil, repository.ErrPostNotFound
	}
	w.apply(p, f)
	p.UpdatedAt = w.r.tick()
	return copyPost(p), nil
}

func (w *memWriter) PublishDraft(ctx context.Context, id int64, f repository.PostFields) (*models.Post, error) {
	if w.r.failWith != nil {
		return nil, w.r.failWith
	}
	p, ok := w.r.rows[id]
	if !ok || p.Status != models.StatusDraft {
		return nil, repository.ErrPostNotFound
	}
	w.apply(p, f)
	now := w.r.tick()
	p.Status = models.StatusPublic
	p.CreatedAt = now
	p.UpdatedAt = now
	return copyPost(p), nil
}

func (w *memWriter) UpdatePublished(ctx context.Context, id int64, f repository.PostFields) (*models.Post, error) {
	if w.r.failWith != nil {
		return nil, w.r.failWith
	}
	p, ok := w.r.rows[id]
	if !ok || p.Status != models.StatusPublic || p.Type != f.Type {
		return nil, repository.ErrPostNotFound
	}
	bskyID := p.Metadata.Get(models.MetaBlueskyPostID)
	w.apply(p, f)
	if bskyID != "" {
		p.Metadata[models.MetaBlueskyPostID] = bskyID
	}
	p.UpdatedAt = w.r.tick()
	return copyPost(p), nil
}
