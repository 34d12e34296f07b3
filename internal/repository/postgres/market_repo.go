package postgres

import (
	"context"

	"jobbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type marketRepo struct {
	db *pgxpool.Pool
}

func NewMarketRepository(db *pgxpool.Pool) domain.MarketRepository {
	return &marketRepo{db: db}
}

func (r *marketRepo) List(ctx context.Context) ([]domain.Market, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, region FROM markets ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []domain.Market
	for rows.Next() {
		var m domain.Market
		if err := rows.Scan(&m.ID, &m.Name, &m.Region); err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

func (r *marketRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Market, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, region FROM markets WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []domain.Market
	for rows.Next() {
		var m domain.Market
		if err := rows.Scan(&m.ID, &m.Name, &m.Region); err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}
