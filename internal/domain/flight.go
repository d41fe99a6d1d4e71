package domain

import "time"

// Flight is a scheduled traversal of a route by a specific airplane within a
// departure/arrival window, with zero or more crew members assigned.
type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time

	// Populated on reads that join related tables.
	Route    *Route
	Airplane *Airplane
	Crews    []Crew
}

// Validate enforces the temporal invariant: departure strictly precedes
// arrival. Called at the request boundary and again right before persistence.
func (f *Flight) Validate() error {
	if f.RouteID == 0 {
		return NewValidationError("route", "route is required")
	}
	if f.AirplaneID == 0 {
		return NewValidationError("airplane", "airplane is required")
	}
	if f.DepartureTime.IsZero() || f.ArrivalTime.IsZero() {
		return NewValidationError("departure_time", "departure_time and arrival_time are required")
	}
	if !f.DepartureTime.Before(f.ArrivalTime) {
		return NewValidationError(
			"departure_time",
			"departure time %s must be before arrival time %s",
			f.DepartureTime.Format(time.RFC3339), f.ArrivalTime.Format(time.RFC3339),
		)
	}
	return nil
}
