package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nikolay2099/airtickets/internal/domain"
)

type AirplaneTypeRepository interface {
	Create(ctx context.Context, t *domain.AirplaneType) error
	Update(ctx context.Context, t *domain.AirplaneType) error
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	List(ctx context.Context, limit, offset int) ([]domain.AirplaneType, error)
}

type AirplaneFilter struct {
	TypeIDs []int64
	Limit   int
	Offset  int
}

type AirplaneRepository interface {
	Create(ctx context.Context, a *domain.Airplane) error
	Update(ctx context.Context, a *domain.Airplane) error
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	List(ctx context.Context, filter AirplaneFilter) ([]domain.Airplane, error)
	SetImagePath(ctx context.Context, id int64, path string) error
}

type PGAirplaneTypeRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneTypeRepository(db *pgxpool.Pool) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, t *domain.AirplaneType) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).
		Scan(&t.ID)
}

func (r *PGAirplaneTypeRepository) Update(ctx context.Context, t *domain.AirplaneType) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, t.Name, t.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airplane type %d: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id)
	var t domain.AirplaneType
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("airplane type %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context, limit, offset int) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY id LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

var _ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

const airplaneColumns = `a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name, COALESCE(a.image_path, '')`

func (r *PGAirplaneRepository) Create(ctx context.Context, a *domain.Airplane) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID).
		Scan(&a.ID)
}

func (r *PGAirplaneRepository) Update(ctx context.Context, a *domain.Airplane) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplanes SET name=$1, rows=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID, a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airplane %d: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `SELECT `+airplaneColumns+`
		FROM airplanes a
		JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE a.id=$1`, id)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.TypeName, &a.ImagePath); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("airplane %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirplaneRepository) List(ctx context.Context, filter AirplaneFilter) ([]domain.Airplane, error) {
	query := `SELECT ` + airplaneColumns + `
		FROM airplanes a
		JOIN airplane_types t ON t.id = a.airplane_type_id`
	args := []interface{}{}
	if len(filter.TypeIDs) > 0 {
		query += ` WHERE a.airplane_type_id = ANY($1)`
		args = append(args, filter.TypeIDs)
	}
	query += fmt.Sprintf(` ORDER BY a.id LIMIT %d OFFSET %d`, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.TypeName, &a.ImagePath); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) SetImagePath(ctx context.Context, id int64, path string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplanes SET image_path=$1 WHERE id=$2`, path, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airplane %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
