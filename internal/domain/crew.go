package domain

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c *Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Crew) Validate() error {
	if c.FirstName == "" {
		return NewValidationError("first_name", "first_name is required")
	}
	if c.LastName == "" {
		return NewValidationError("last_name", "last_name is required")
	}
	return nil
}
