package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nikolay2099/airtickets/internal/domain"
)

type CrewRepository interface {
	Create(ctx context.Context, c *domain.Crew) error
	Update(ctx context.Context, c *domain.Crew) error
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Crew, error)
	List(ctx context.Context, limit, offset int) ([]domain.Crew, error)
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) Create(ctx context.Context, c *domain.Crew) error {
	return r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		c.FirstName, c.LastName).Scan(&c.ID)
}

func (r *PGCrewRepository) Update(ctx context.Context, c *domain.Crew) error {
	cmd, err := r.db.Exec(ctx, `UPDATE crews SET first_name=$1, last_name=$2 WHERE id=$3`,
		c.FirstName, c.LastName, c.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("crew %d: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	row := r.db.QueryRow(ctx, `SELECT id, first_name, last_name FROM crews WHERE id=$1`, id)
	var c domain.Crew
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("crew %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

// GetByIDs resolves a set of crew members; every requested id must exist,
// otherwise ErrNotFound is returned naming the first missing one.
func (r *PGCrewRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Crew, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[int64]domain.Crew, len(ids))
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		found[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crews := make([]domain.Crew, 0, len(ids))
	for _, id := range ids {
		c, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("crew %d: %w", id, domain.ErrNotFound)
		}
		crews = append(crews, c)
	}
	return crews, nil
}

func (r *PGCrewRepository) List(ctx context.Context, limit, offset int) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY id LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

var _ CrewRepository = (*PGCrewRepository)(nil)
