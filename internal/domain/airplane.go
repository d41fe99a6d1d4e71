package domain

type AirplaneType struct {
	ID   int64
	Name string
}

func (t *AirplaneType) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "name is required")
	}
	return nil
}

// SeatBounds is the physical seat grid of an airplane.
type SeatBounds struct {
	Rows       int
	SeatsInRow int
}

type Airplane struct {
	ID             int64
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
	TypeName       string
	ImagePath      string
}

func (a *Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a *Airplane) Bounds() SeatBounds {
	return SeatBounds{Rows: a.Rows, SeatsInRow: a.SeatsInRow}
}

func (a *Airplane) Validate() error {
	if a.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if a.Rows < 1 {
		return NewValidationError("rows", "rows must be at least 1, got %d", a.Rows)
	}
	if a.SeatsInRow < 1 {
		return NewValidationError("seats_in_row", "seats_in_row must be at least 1, got %d", a.SeatsInRow)
	}
	if a.AirplaneTypeID == 0 {
		return NewValidationError("airplane_type", "airplane_type is required")
	}
	return nil
}
