package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imax/maxua-public/internal/models"
)

// ErrPostNotFound: строка не найдена или не в нужном статусе.
var ErrPostNotFound = errors.New("post not found")

// PostFields: вычисляемые поля, которые пишутся при любом create/update.
type PostFields struct {
	Content     string
	PreviewText string
	Slug        string
	Type        models.PostType
	Metadata    models.Metadata
}

// PostWriter: операции записи внутри одной транзакции.
type PostWriter interface {
	Insert(ctx context.Context, status models.PostStatus, f PostFields) (*models.Post, error)
	UpdateDraft(ctx context.Context, id int64, f PostFields) (*models.Post, error)
	PublishDraft(ctx context.Context, id int64, f PostFields) (*models.Post, error)
	UpdatePublished(ctx context.Context, id int64, f PostFields) (*models.Post, error)
}

type PostRepo interface {
	// WithTx выполняет fn в транзакции; ошибка fn откатывает всё.
	WithTx(ctx context.Context, fn func(w PostWriter) error) error
	GetPublic(ctx context.Context, id int64) (*models.Post, error)
	ListPublic(ctx context.Context, postType models.PostType, limit, offset int) ([]*models.Post, int, error)
	ListDrafts(ctx context.Context, limit int) ([]*models.Post, error)
	DeleteDraft(ctx context.Context, id int64) (bool, error)
	SetMetadataKey(ctx context.Context, id int64, key, value string) error
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const postColumns = `id, content, preview_text, slug, status, type, metadata, created_at, updated_at`

type postRepo struct{ db *pgxpool.Pool }

func NewPostRepo(db *pgxpool.Pool) PostRepo { return &postRepo{db: db} }

func (r *postRepo) WithTx(ctx context.Context, fn func(w PostWriter) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// после Commit откат ничего не делает
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&postWriter{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *postRepo) GetPublic(ctx context.Context, id int64) (*models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND status = 'public'`
	return scanPost(r.db.QueryRow(ctx, q, id))
}

func (r *postRepo) ListPublic(ctx context.Context, postType models.PostType, limit, offset int) ([]*models.Post, int, error) {
	where := []string{"status = 'public'"}
	args := []any{}
	i := 1

	if postType != "" {
		where = append(where, fmt.Sprintf("type = $%d", i))
		args = append(args, string(postType))
		i++
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + postColumns + ` FROM posts` + cond +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	list, err := queryPosts(ctx, r.db, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *postRepo) ListDrafts(ctx context.Context, limit int) ([]*models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE status = 'draft' ORDER BY created_at DESC LIMIT $1`
	return queryPosts(ctx, r.db, q, limit)
}

func (r *postRepo) DeleteDraft(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postRepo) SetMetadataKey(ctx context.Context, id int64, key, value string) error {
	const q = `
		UPDATE posts
		SET metadata = jsonb_set(metadata, ARRAY[$2::text], to_jsonb($3::text), true)
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, q, id, key, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

type postWriter struct{ q querier }

func (w *postWriter) Insert(ctx context.Context, status models.PostStatus, f PostFields) (*models.Post, error) {
	meta, err := encodeMetadata(f.Metadata)
	if err != nil {
		return nil, err
	}
	q := `
		INSERT INTO posts (content, preview_text, slug, status, type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		RETURNING ` + postColumns
	return scanPost(w.q.QueryRow(ctx, q, f.Content, f.PreviewText, f.Slug, string(status), string(f.Type), meta))
}

func (w *postWriter) UpdateDraft(ctx context.Context, id int64, f PostFields) (*models.Post, error) {
	meta, err := encodeMetadata(f.Metadata)
	if err != nil {
		return nil, err
	}
	q := `
		UPDATE posts
		SET content = $1, preview_text = $2, slug = $3,
		    type = $4, metadata = $5::jsonb, updated_at = NOW()
		WHERE id = $6 AND status = 'draft'
		RETURNING ` + postColumns
	return scanPost(w.q.QueryRow(ctx, q, f.Content, f.PreviewText, f.Slug, string(f.Type), meta, id))
}

// PublishDraft переводит черновик в public и сбрасывает created_at на текущий момент.
func (w *postWriter) PublishDraft(ctx context.Context, id int64, f PostFields) (*models.Post, error) {
	meta, err := encodeMetadata(f.Metadata)
	if err != nil {
		return nil, err
	}
	q := `
		UPDATE posts
		SET content = $1, preview_text = $2, slug = $3, status = 'public',
		    type = $4, metadata = $5::jsonb, created_at = NOW(), updated_at = NOW()
		WHERE id = $6 AND status = 'draft'
		RETURNING ` + postColumns
	return scanPost(w.q.QueryRow(ctx, q, f.Content, f.PreviewText, f.Slug, string(f.Type), meta, id))
}

// UpdatePublished правит опубликованный пост того же типа; created_at не трогаем.
// bluesky_post_id клиент не присылает, поэтому сохраняем его из старой версии.
func (w *postWriter) UpdatePublished(ctx context.Context, id int64, f PostFields) (*models.Post, error) {
	meta, err := encodeMetadata(f.Metadata)
	if err != nil {
		return nil, err
	}
	q := `
		UPDATE posts
		SET content = $1, preview_text = $2, slug = $3,
		    metadata = $4::jsonb || jsonb_strip_nulls(
		        jsonb_build_object('bluesky_post_id', metadata->'bluesky_post_id')),
		    updated_at = NOW()
		WHERE id = $5 AND status = 'public' AND type = $6
		RETURNING ` + postColumns
	return scanPost(w.q.QueryRow(ctx, q, f.Content, f.PreviewText, f.Slug, meta, id, string(f.Type)))
}

func encodeMetadata(m models.Metadata) ([]byte, error) {
	if m == nil {
		m = models.Metadata{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return b, nil
}

func queryPosts(ctx context.Context, q querier, sql string, args ...any) ([]*models.Post, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var (
		p       models.Post
		status  string
		typ     string
		metaRaw []byte
	)
	err := row.Scan(
		&p.ID, &p.Content, &p.PreviewText, &p.Slug,
		&status, &typ, &metaRaw, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Status = models.PostStatus(status)
	p.Type = models.PostType(typ)
	p.Metadata = models.Metadata{}
	if len(metaRaw) > 0 {
		// старые строки могли хранить нестроковые значения; такие ключи пропускаем
		var raw map[string]any
		if err := json.Unmarshal(metaRaw, &raw); err == nil {
			for k, v := range raw {
				if s, ok := v.(string); ok {
					p.Metadata[k] = s
				}
			}
		}
	}
	return &p, nil
}
