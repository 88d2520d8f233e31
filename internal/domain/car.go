package domain

import "time"

type CarStatusCode string

const (
	CarStatusAvailable   CarStatusCode = "available"
	CarStatusRented      CarStatusCode = "rented"
	CarStatusMaintenance CarStatusCode = "maintenance"
	CarStatusDisabled    CarStatusCode = "disabled"
)

// CarStatus is a catalog row. The catalog is data, not a hardcoded enum, so
// deployments can retire a status by flipping IsActive instead of deleting it.
type CarStatus struct {
	ID          int32         `json:"id"`
	Code        CarStatusCode `json:"code"`
	Label       string        `json:"label"`
	Description string        `json:"description,omitempty"`
	IsActive    bool          `json:"is_active"`
}

type Car struct {
	ID          int32  `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Description string `json:"description,omitempty"`
	Year        int32  `json:"year"`
	// Daily rate in minor currency units.
	PriceCents int32         `json:"price_cents"`
	StatusID   int32         `json:"status_id"`
	StatusCode CarStatusCode `json:"status_code"`
	Image      string        `json:"image,omitempty"`
	UpdatedOn  *time.Time    `json:"updated_on,omitempty"`
}

func (c *Car) DisplayName() string {
	return c.Make + " " + c.Model
}

func (c *Car) IsCurrentlyRented() bool {
	return c.StatusCode == CarStatusRented
}

func (c *Car) IsDisabled() bool {
	return c.StatusCode == CarStatusDisabled
}
