package domain

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
}

func (a *Airport) Validate() error {
	if a.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if a.ClosestBigCity == "" {
		return NewValidationError("closest_big_city", "closest_big_city is required")
	}
	return nil
}
