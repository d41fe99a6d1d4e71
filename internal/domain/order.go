package domain

import "time"

// Order groups one or more tickets bought by a user in a single submission.
// The creation timestamp is assigned by the database and never updated.
type Order struct {
	ID        int64
	Reference string
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

// Ticket is a single seat claim on a single flight. The (flight, row, seat)
// triple is globally unique, enforced by the storage layer.
type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64
}

// TicketSpec is a requested seat on a flight inside an order submission.
type TicketSpec struct {
	Row      int
	Seat     int
	FlightID int64
}

// ValidateSeat checks that a requested (row, seat) pair lies inside the
// airplane's grid. The row is checked before the seat, and the first field
// out of range is the one reported together with its valid range.
func ValidateSeat(row, seat int, bounds SeatBounds) error {
	if row < 1 || row > bounds.Rows {
		return NewValidationError("row", "row must be in range 1..%d, got %d", bounds.Rows, row)
	}
	if seat < 1 || seat > bounds.SeatsInRow {
		return NewValidationError("seat", "seat must be in range 1..%d, got %d", bounds.SeatsInRow, seat)
	}
	return nil
}
