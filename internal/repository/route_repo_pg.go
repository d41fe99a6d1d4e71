package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nikolay2099/airtickets/internal/domain"
)

type RouteFilter struct {
	// Case-insensitive substring match on the closest big city of the
	// source/destination airport.
	Source      string
	Destination string
	Limit       int
	Offset      int
}

type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	List(ctx context.Context, filter RouteFilter) ([]domain.Route, error)
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	return r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance)
		VALUES ($1, $2, $3)
		RETURNING id`, route.SourceID, route.DestinationID, route.Distance).
		Scan(&route.ID)
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	cmd, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("route %d: %w", route.ID, domain.ErrNotFound)
	}
	return nil
}

const routeColumns = `r.id, r.source_id, r.destination_id, r.distance,
	s.id, s.name, s.closest_big_city,
	d.id, d.name, d.closest_big_city`

func scanRoute(row interface{ Scan(...interface{}) error }) (*domain.Route, error) {
	var (
		route domain.Route
		src   domain.Airport
		dst   domain.Airport
	)
	err := row.Scan(
		&route.ID, &route.SourceID, &route.DestinationID, &route.Distance,
		&src.ID, &src.Name, &src.ClosestBigCity,
		&dst.ID, &dst.Name, &dst.ClosestBigCity,
	)
	if err != nil {
		return nil, err
	}
	route.Source = &src
	route.Destination = &dst
	return &route, nil
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, `SELECT `+routeColumns+`
		FROM routes r
		JOIN airports s ON s.id = r.source_id
		JOIN airports d ON d.id = r.destination_id
		WHERE r.id=$1`, id)
	route, err := scanRoute(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("route %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return route, nil
}

func (r *PGRouteRepository) List(ctx context.Context, filter RouteFilter) ([]domain.Route, error) {
	query := `SELECT ` + routeColumns + `
		FROM routes r
		JOIN airports s ON s.id = r.source_id
		JOIN airports d ON d.id = r.destination_id
		WHERE 1=1`
	args := []interface{}{}
	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += fmt.Sprintf(" AND s.closest_big_city ILIKE $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(" AND d.closest_big_city ILIKE $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY r.id LIMIT %d OFFSET %d", normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}
	return routes, rows.Err()
}

var _ RouteRepository = (*PGRouteRepository)(nil)
