package domain

// Route is a directed source -> destination airport pair with a distance.
type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int

	// Populated on reads that join airports.
	Source      *Airport
	Destination *Airport
}

// Validate enforces the route invariants: both airport references present,
// distinct from each other, and a positive distance. It is called at the
// request boundary and again right before persistence.
func (r *Route) Validate() error {
	if r.SourceID == 0 {
		return NewValidationError("source", "source airport is required")
	}
	if r.DestinationID == 0 {
		return NewValidationError("destination", "destination airport is required")
	}
	if r.SourceID == r.DestinationID {
		return NewValidationError("destination", "source and destination must be different airports")
	}
	if r.Distance <= 0 {
		return NewValidationError("distance", "distance must be positive, got %d", r.Distance)
	}
	return nil
}
