package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/logger"
)

// MarkOverdueRentals flags approved rentals whose end date has passed without
// a return. The lifecycle has no overdue state, so the job records an audit
// entry per rental and alerts staff instead of mutating status.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		overdue, err := jr.store.RentalRequests().ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue rentals found")
			return
		}

		actor := domain.SystemActor()
		var lines []string
		for _, rental := range overdue {
			jr.services.Activity.Log(ctx, actor, domain.ActionMarkRentalOverdue,
				fmt.Sprintf("Rental #%d is overdue (due %s)", rental.ID, rental.EndDate.Format("2006-01-02")),
				map[string]any{
					"rental_request_id": rental.ID,
					"car_id":            rental.CarID,
					"customer_id":       rental.CustomerID,
					"end_date":          rental.EndDate.Format("2006-01-02"),
				})
			lines = append(lines, fmt.Sprintf("Rental #%d, car %d, customer %d, due %s",
				rental.ID, rental.CarID, rental.CustomerID, rental.EndDate.Format("2006-01-02")))
			logger.Debug("Rental overdue",
				"rental_id", rental.ID,
				"car_id", rental.CarID,
				"end_date", rental.EndDate.Format("2006-01-02"))
		}

		logger.Info("Marked rentals as overdue", "count", len(overdue))

		subject := fmt.Sprintf("%d overdue rental(s) need attention", len(overdue))
		body := "The following rentals are past their end date and not returned:\n\n" + strings.Join(lines, "\n")
		if err := jr.services.Email.SendOpsAlert(ctx, subject, body); err != nil {
			logger.Error("Failed to send overdue rentals alert", "error", err)
		}
	})
}
