package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nikolay2099/airtickets/internal/domain"
)

type AirportRepository interface {
	Create(ctx context.Context, a *domain.Airport) error
	Update(ctx context.Context, a *domain.Airport) error
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	List(ctx context.Context, limit, offset int) ([]domain.Airport, error)
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city) VALUES ($1, $2) RETURNING id`,
		a.Name, a.ClosestBigCity).Scan(&a.ID)
}

func (r *PGAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airports SET name=$1, closest_big_city=$2 WHERE id=$3`,
		a.Name, a.ClosestBigCity, a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airport %d: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, closest_big_city FROM airports WHERE id=$1`, id)
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("airport %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context, limit, offset int) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, closest_big_city FROM airports ORDER BY id LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

var _ AirportRepository = (*PGAirportRepository)(nil)
