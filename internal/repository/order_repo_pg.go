package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nikolay2099/airtickets/internal/domain"
)

type OrderRepository interface {
	// Create persists the order together with every ticket already attached
	// to it within a single transaction. A unique constraint rejection on
	// (flight, row, seat) rolls the whole submission back and surfaces as
	// domain.ErrSeatTaken.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, userID, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO orders (reference, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at`, order.Reference, order.UserID).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		err := tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, t.Row, t.Seat, t.FlightID, t.OrderID).
			Scan(&t.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("flight %d row %d seat %d: %w",
					t.FlightID, t.Row, t.Seat, domain.ErrSeatTaken)
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, user_id, created_at FROM orders WHERE id=$1 AND user_id=$2`,
		id, userID)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	tickets, err := r.ticketsForOrders(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Tickets = tickets[o.ID]
	if o.Tickets == nil {
		o.Tickets = []domain.Ticket{}
	}
	return &o, nil
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, reference, user_id, created_at
		FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	tickets, err := r.ticketsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Tickets = tickets[orders[i].ID]
		if orders[i].Tickets == nil {
			orders[i].Tickets = []domain.Ticket{}
		}
	}
	return orders, nil
}

func (r *PGOrderRepository) ticketsForOrders(ctx context.Context, orderIDs []int64) (map[int64][]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, "row", seat, flight_id, order_id
		FROM tickets
		WHERE order_id = ANY($1)
		ORDER BY id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[int64][]domain.Ticket, len(orderIDs))
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID); err != nil {
			return nil, err
		}
		byOrder[t.OrderID] = append(byOrder[t.OrderID], t)
	}
	return byOrder, rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
