package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nikolay2099/airtickets/internal/domain"
)

type FlightFilter struct {
	// Case-insensitive substring match on the source/destination closest
	// big city ("Kyiv-Lviv" style route filters split into the two parts).
	SourceCity      string
	DestinationCity string
	Limit           int
	Offset          int
}

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
	Update(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).
		Scan(&flight.ID)
	if err != nil {
		return err
	}

	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`,
			flight.ID, crewID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4 WHERE id=$5`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", flight.ID, domain.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id=$1`, flight.ID); err != nil {
		return err
	}
	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`,
			flight.ID, crewID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const flightColumns = `f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	r.id, r.source_id, r.destination_id, r.distance,
	s.id, s.name, s.closest_big_city,
	d.id, d.name, d.closest_big_city,
	a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name, COALESCE(a.image_path, '')`

const flightJoins = `
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports s ON s.id = r.source_id
	JOIN airports d ON d.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id
	JOIN airplane_types t ON t.id = a.airplane_type_id`

func scanFlight(row interface{ Scan(...interface{}) error }) (*domain.Flight, error) {
	var (
		f     domain.Flight
		route domain.Route
		src   domain.Airport
		dst   domain.Airport
		plane domain.Airplane
	)
	err := row.Scan(
		&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&route.ID, &route.SourceID, &route.DestinationID, &route.Distance,
		&src.ID, &src.Name, &src.ClosestBigCity,
		&dst.ID, &dst.Name, &dst.ClosestBigCity,
		&plane.ID, &plane.Name, &plane.Rows, &plane.SeatsInRow, &plane.AirplaneTypeID, &plane.TypeName, &plane.ImagePath,
	)
	if err != nil {
		return nil, err
	}
	route.Source = &src
	route.Destination = &dst
	f.Route = &route
	f.Airplane = &plane
	return &f, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+flightJoins+` WHERE f.id=$1`, id)
	flight, err := scanFlight(row)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	crews, err := r.crewsForFlight(ctx, id)
	if err != nil {
		return nil, err
	}
	flight.Crews = crews
	return flight, nil
}

func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + flightJoins + ` WHERE 1=1`
	args := []interface{}{}
	if filter.SourceCity != "" {
		args = append(args, "%"+filter.SourceCity+"%")
		query += fmt.Sprintf(" AND s.closest_big_city ILIKE $%d", len(args))
	}
	if filter.DestinationCity != "" {
		args = append(args, "%"+filter.DestinationCity+"%")
		query += fmt.Sprintf(" AND d.closest_big_city ILIKE $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY f.departure_time LIMIT %d OFFSET %d",
		normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *flight)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) crewsForFlight(ctx context.Context, flightID int64) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT c.id, c.first_name, c.last_name
		FROM flight_crews fc
		JOIN crews c ON c.id = fc.crew_id
		WHERE fc.flight_id=$1
		ORDER BY c.id`, flightID)
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

var _ FlightRepository = (*PGFlightRepository)(nil)
