package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusApproved  RentalStatus = "approved"
	RentalStatusRejected  RentalStatus = "rejected"
	RentalStatusCompleted RentalStatus = "completed"
)

// CanTransitionTo reports whether the state machine allows moving from s to
// next. Rejected and completed are terminal; an approved request can still be
// rejected on re-review.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	switch s {
	case RentalStatusPending:
		return next == RentalStatusApproved || next == RentalStatusRejected
	case RentalStatusApproved:
		return next == RentalStatusRejected || next == RentalStatusCompleted
	}
	return false
}

type RentalRequest struct {
	ID         int32        `json:"id"`
	CustomerID int32        `json:"customer_id"`
	CarID      int32        `json:"car_id"`
	StartDate  time.Time    `json:"start_date"`
	EndDate    time.Time    `json:"end_date"`
	Status     RentalStatus `json:"status"`
	ApprovedAt *time.Time   `json:"approved_at,omitempty"`
	ApprovedBy *int32       `json:"approved_by,omitempty"`
	RejectedAt *time.Time   `json:"rejected_at,omitempty"`
	RejectedBy *int32       `json:"rejected_by,omitempty"`
	ReturnedAt *time.Time   `json:"returned_at,omitempty"`
	// Total in minor currency units; set when the request is priced (walk-in).
	TotalPriceCents *int32     `json:"total_price_cents,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedOn       time.Time  `json:"created_on"`
	UpdatedOn       *time.Time `json:"updated_on,omitempty"`
}

// InclusiveDays is the chargeable duration: both the start and the end day
// count, so a same-day rental is one day.
func InclusiveDays(start, end time.Time) int32 {
	days := int32(end.Sub(start).Hours() / 24)
	return days + 1
}

// IsActive reports whether the request currently occupies its car.
func (r *RentalRequest) IsActive() bool {
	return r.Status == RentalStatusApproved && r.ReturnedAt == nil
}
