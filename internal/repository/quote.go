package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imax/maxua-public/internal/models"
)

type QuoteRepo interface {
	GetAll(ctx context.Context) ([]models.Quote, error)
}

type quoteRepo struct{ db *pgxpool.Pool }

func NewQuoteRepo(db *pgxpool.Pool) QuoteRepo { return &quoteRepo{db: db} }

func (r *quoteRepo) GetAll(ctx context.Context) ([]models.Quote, error) {
	rows, err := r.db.Query(ctx, `SELECT id, text, author FROM qotd ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Quote
	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.ID, &q.Text, &q.Author); err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
