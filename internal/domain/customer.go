package domain

import "time"

// Customer is the rental counterparty. Walk-in customers may exist without a
// linked user account; UserID is set once a matching account registers.
type Customer struct {
	ID            int32      `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	LicenseNumber string     `json:"license_number,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	UserID        *int32     `json:"user_id,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     *time.Time `json:"updated_on,omitempty"`
}

func (c *Customer) DisplayName() string {
	name := c.FirstName + " " + c.LastName
	if name == " " {
		return c.Email
	}
	return name
}
