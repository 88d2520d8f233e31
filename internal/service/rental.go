package service

import (
	"context"
	"fmt"
	"time"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

type rentalService struct {
	store    repository.Store
	settings SettingsService
	activity ActivityService
	email    EmailService
	now      Clock
}

func NewRentalService(
	store repository.Store,
	settings SettingsService,
	activity ActivityService,
	email EmailService,
	now Clock,
) RentalService {
	if now == nil {
		now = time.Now
	}
	return &rentalService{
		store:    store,
		settings: settings,
		activity: activity,
		email:    email,
		now:      now,
	}
}

func (s *rentalService) Create(ctx context.Context, actor domain.Actor, in CreateRentalInput) (*domain.RentalRequest, error) {
	if err := s.validateBooking(ctx, actor, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	var req *domain.RentalRequest
	var car *domain.Car
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if car, err = tx.Cars().GetByID(ctx, in.CarID); err != nil {
			return err
		}
		if _, err = tx.Customers().GetByID(ctx, in.CustomerID); err != nil {
			return err
		}

		req = &domain.RentalRequest{
			CustomerID: in.CustomerID,
			CarID:      in.CarID,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Status:     domain.RentalStatusPending,
			Notes:      in.Notes,
			CreatedOn:  s.now(),
		}
		return tx.RentalRequests().Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionCreateRentalRequest,
		"Rental request created for car: "+car.DisplayName(),
		map[string]any{
			"rental_request_id": req.ID,
			"car_id":            req.CarID,
			"customer_id":       req.CustomerID,
			"start_date":        req.StartDate.Format("2006-01-02"),
			"end_date":          req.EndDate.Format("2006-01-02"),
			"status":            string(req.Status),
		})
	return req, nil
}

func (s *rentalService) CreateWalkIn(ctx context.Context, actor domain.Actor, in CreateRentalInput) (*domain.RentalRequest, error) {
	if err := s.validateBooking(ctx, actor, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	var req *domain.RentalRequest
	var car *domain.Car
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if car, err = tx.Cars().GetByID(ctx, in.CarID); err != nil {
			return err
		}
		if car.StatusCode != domain.CarStatusAvailable {
			return &domain.ValidationError{Field: "car", Reason: "selected car is not available for rental"}
		}
		if _, err = tx.Customers().GetByID(ctx, in.CustomerID); err != nil {
			return err
		}

		rented, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusRented)
		if err != nil {
			return err
		}

		now := s.now()
		total := car.PriceCents * domain.InclusiveDays(in.StartDate, in.EndDate)
		approverID := actor.UserID

		req = &domain.RentalRequest{
			CustomerID:      in.CustomerID,
			CarID:           in.CarID,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			Status:          domain.RentalStatusApproved,
			ApprovedAt:      &now,
			ApprovedBy:      &approverID,
			TotalPriceCents: &total,
			Notes:           in.Notes,
			CreatedOn:       now,
		}
		if err := tx.RentalRequests().Create(ctx, req); err != nil {
			return err
		}
		return tx.Cars().UpdateStatus(ctx, car.ID, rented.ID)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionCreateWalkInRental,
		fmt.Sprintf("Created walk-in rental #%d for car: %s", req.ID, car.DisplayName()),
		map[string]any{
			"rental_request_id": req.ID,
			"car_id":            req.CarID,
			"customer_id":       req.CustomerID,
			"start_date":        req.StartDate.Format("2006-01-02"),
			"end_date":          req.EndDate.Format("2006-01-02"),
			"total_price_cents": *req.TotalPriceCents,
			"walk_in":           true,
		})
	s.notifyCustomer(ctx, req, car)
	return req, nil
}

func (s *rentalService) Approve(ctx context.Context, actor domain.Actor, requestID int32) (*domain.RentalRequest, error) {
	var req *domain.RentalRequest
	var car *domain.Car
	var oldStatus domain.RentalStatus
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if req, err = tx.RentalRequests().GetByID(ctx, requestID); err != nil {
			return err
		}
		oldStatus = req.Status
		if req.Status != domain.RentalStatusPending {
			return &domain.InvalidTransitionError{From: req.Status, To: domain.RentalStatusApproved}
		}

		// A missing "rented" catalog row is a hard stop: approving without
		// flipping the car would leave the fleet inconsistent.
		rented, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusRented)
		if err != nil {
			return err
		}
		if car, err = tx.Cars().GetByID(ctx, req.CarID); err != nil {
			return err
		}

		now := s.now()
		approverID := actor.UserID
		req.Status = domain.RentalStatusApproved
		req.ApprovedAt = &now
		req.ApprovedBy = &approverID
		req.UpdatedOn = &now
		if err := tx.RentalRequests().Update(ctx, req); err != nil {
			return err
		}
		return tx.Cars().UpdateStatus(ctx, req.CarID, rented.ID)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionApproveRentalRequest,
		fmt.Sprintf("Approved rental request #%d", req.ID),
		map[string]any{
			"rental_request_id": req.ID,
			"car_id":            req.CarID,
			"customer_id":       req.CustomerID,
			"old_status":        string(oldStatus),
			"new_status":        string(req.Status),
		})
	s.notifyCustomer(ctx, req, car)
	return req, nil
}

func (s *rentalService) Reject(ctx context.Context, actor domain.Actor, requestID int32) (*domain.RentalRequest, error) {
	var req *domain.RentalRequest
	var oldStatus domain.RentalStatus
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if req, err = tx.RentalRequests().GetByID(ctx, requestID); err != nil {
			return err
		}
		oldStatus = req.Status
		if !req.Status.CanTransitionTo(domain.RentalStatusRejected) {
			return &domain.InvalidTransitionError{From: req.Status, To: domain.RentalStatusRejected}
		}

		now := s.now()
		rejecterID := actor.UserID
		req.Status = domain.RentalStatusRejected
		req.RejectedAt = &now
		req.RejectedBy = &rejecterID
		req.UpdatedOn = &now
		if err := tx.RentalRequests().Update(ctx, req); err != nil {
			return err
		}

		// Rejecting a previously approved request frees its car.
		if oldStatus == domain.RentalStatusApproved {
			available, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusAvailable)
			if err != nil {
				return err
			}
			return tx.Cars().UpdateStatus(ctx, req.CarID, available.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionRejectRentalRequest,
		fmt.Sprintf("Rejected rental request #%d", req.ID),
		map[string]any{
			"rental_request_id": req.ID,
			"car_id":            req.CarID,
			"customer_id":       req.CustomerID,
			"old_status":        string(oldStatus),
			"new_status":        string(req.Status),
		})
	return req, nil
}

func (s *rentalService) Edit(ctx context.Context, actor domain.Actor, requestID int32, edit RentalEdit) (*domain.RentalRequest, error) {
	if !actor.IsStaff() {
		return nil, &domain.ValidationError{Field: "actor", Reason: "rental requests can only be edited by staff"}
	}
	if edit.StartDate != nil && edit.EndDate != nil && edit.EndDate.Before(*edit.StartDate) {
		return nil, &domain.ValidationError{Field: "end_date", Reason: "end date must not be before start date"}
	}

	var req *domain.RentalRequest
	changes := map[string]any{}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if req, err = tx.RentalRequests().GetByID(ctx, requestID); err != nil {
			return err
		}

		oldStatus := req.Status
		oldCarID := req.CarID
		now := s.now()

		if edit.Status != nil && *edit.Status != oldStatus && !oldStatus.CanTransitionTo(*edit.Status) {
			return &domain.InvalidTransitionError{From: oldStatus, To: *edit.Status}
		}

		if edit.CustomerID != nil && *edit.CustomerID != req.CustomerID {
			if _, err := tx.Customers().GetByID(ctx, *edit.CustomerID); err != nil {
				return err
			}
			changes["customer"] = diff(req.CustomerID, *edit.CustomerID)
			req.CustomerID = *edit.CustomerID
		}
		if edit.CarID != nil && *edit.CarID != req.CarID {
			if _, err := tx.Cars().GetByID(ctx, *edit.CarID); err != nil {
				return err
			}
			changes["car"] = diff(req.CarID, *edit.CarID)
			req.CarID = *edit.CarID
		}
		if edit.StartDate != nil && !edit.StartDate.Equal(req.StartDate) {
			changes["start_date"] = diff(req.StartDate.Format("2006-01-02"), edit.StartDate.Format("2006-01-02"))
			req.StartDate = *edit.StartDate
		}
		if edit.EndDate != nil && !edit.EndDate.Equal(req.EndDate) {
			changes["end_date"] = diff(req.EndDate.Format("2006-01-02"), edit.EndDate.Format("2006-01-02"))
			req.EndDate = *edit.EndDate
		}
		if req.EndDate.Before(req.StartDate) {
			return &domain.ValidationError{Field: "end_date", Reason: "end date must not be before start date"}
		}
		if edit.Notes != nil && *edit.Notes != req.Notes {
			changes["notes"] = diff(req.Notes, *edit.Notes)
			req.Notes = *edit.Notes
		}

		newStatus := oldStatus
		if edit.Status != nil {
			newStatus = *edit.Status
		}
		if newStatus != oldStatus {
			changes["status"] = diff(string(oldStatus), string(newStatus))
			req.Status = newStatus
			actorID := actor.UserID
			switch newStatus {
			case domain.RentalStatusApproved:
				req.ApprovedAt = &now
				req.ApprovedBy = &actorID
			case domain.RentalStatusRejected:
				req.RejectedAt = &now
				req.RejectedBy = &actorID
			case domain.RentalStatusCompleted:
				req.ReturnedAt = &now
			}
		}

		req.UpdatedOn = &now
		if err := tx.RentalRequests().Update(ctx, req); err != nil {
			return err
		}

		// Car side effects are derived from the status/car diff, never from
		// the input directly.
		wasOccupying := oldStatus == domain.RentalStatusApproved
		nowOccupying := req.Status == domain.RentalStatusApproved

		if wasOccupying && (!nowOccupying || oldCarID != req.CarID) {
			available, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusAvailable)
			if err != nil {
				return err
			}
			if err := tx.Cars().UpdateStatus(ctx, oldCarID, available.ID); err != nil {
				return err
			}
		}
		if nowOccupying && (!wasOccupying || oldCarID != req.CarID) {
			rented, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusRented)
			if err != nil {
				return err
			}
			if err := tx.Cars().UpdateStatus(ctx, req.CarID, rented.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionUpdateRentalRequest,
		fmt.Sprintf("Updated rental request #%d", req.ID),
		map[string]any{
			"rental_request_id": req.ID,
			"car_id":            req.CarID,
			"customer_id":       req.CustomerID,
			"changes":           changes,
		})
	return req, nil
}

func (s *rentalService) Complete(ctx context.Context, actor domain.Actor, requestID int32, returnNotes string) (*domain.RentalRequest, error) {
	var req *domain.RentalRequest
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		if req, err = tx.RentalRequests().GetByID(ctx, requestID); err != nil {
			return err
		}
		if req.Status != domain.RentalStatusApproved {
			return &domain.InvalidTransitionError{From: req.Status, To: domain.RentalStatusCompleted}
		}

		available, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusAvailable)
		if err != nil {
			return err
		}

		now := s.now()
		req.Status = domain.RentalStatusCompleted
		req.ReturnedAt = &now
		req.UpdatedOn = &now
		if returnNotes != "" {
			req.Notes = appendReturnNotes(req.Notes, returnNotes)
		}
		if err := tx.RentalRequests().Update(ctx, req); err != nil {
			return err
		}
		return tx.Cars().UpdateStatus(ctx, req.CarID, available.ID)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, actor, domain.ActionCompleteRental,
		fmt.Sprintf("Completed rental #%d", req.ID),
		map[string]any{
			"rental_request_id": req.ID,
			"car_id":            req.CarID,
			"customer_id":       req.CustomerID,
		})
	return req, nil
}

func (s *rentalService) Delete(ctx context.Context, actor domain.Actor, requestID int32) error {
	var snapshot map[string]any
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		req, err := tx.RentalRequests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		snapshot = map[string]any{
			"rental_request_id": req.ID,
			"car_id":            req.CarID,
			"customer_id":       req.CustomerID,
			"status":            string(req.Status),
			"start_date":        req.StartDate.Format("2006-01-02"),
			"end_date":          req.EndDate.Format("2006-01-02"),
		}

		// Deleting an active approved request must not strand its car.
		if req.IsActive() {
			available, err := tx.CarStatuses().GetByCode(ctx, domain.CarStatusAvailable)
			if err != nil {
				return err
			}
			if err := tx.Cars().UpdateStatus(ctx, req.CarID, available.ID); err != nil {
				return err
			}
		}
		return tx.RentalRequests().Delete(ctx, req.ID)
	})
	if err != nil {
		return err
	}

	s.activity.Log(ctx, actor, domain.ActionDeleteRentalRequest,
		fmt.Sprintf("Deleted rental request #%d", requestID), snapshot)
	return nil
}

func (s *rentalService) Get(ctx context.Context, requestID int32) (*domain.RentalRequest, error) {
	return s.store.RentalRequests().GetByID(ctx, requestID)
}

func (s *rentalService) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.RentalRequest, error) {
	return s.store.RentalRequests().ListByStatus(ctx, status)
}

func (s *rentalService) AvailableCars(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	if end.Before(start) {
		return nil, &domain.ValidationError{Field: "end_date", Reason: "end date must not be before start date"}
	}

	cars, err := s.store.Cars().ListByStatusCode(ctx, domain.CarStatusAvailable)
	if err != nil {
		return nil, err
	}
	overlapping, err := s.store.RentalRequests().ListApprovedOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}

	occupied := make(map[int32]bool, len(overlapping))
	for _, req := range overlapping {
		occupied[req.CarID] = true
	}

	free := cars[:0]
	for _, car := range cars {
		if !occupied[car.ID] {
			free = append(free, car)
		}
	}
	return free, nil
}

func (s *rentalService) TodayActiveWalkIns(ctx context.Context) ([]domain.RentalRequest, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.store.RentalRequests().ListActiveCreatedBetween(ctx, today, today.AddDate(0, 0, 1))
}

func (s *rentalService) CompletedHistory(ctx context.Context, from, to *time.Time) (*WalkInStats, error) {
	rentals, err := s.store.RentalRequests().ListCompletedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &WalkInStats{Rentals: rentals}
	var totalDays int64
	for _, r := range rentals {
		if r.TotalPriceCents != nil {
			stats.TotalRevenueCents += int64(*r.TotalPriceCents)
		}
		totalDays += int64(domain.InclusiveDays(r.StartDate, r.EndDate))
	}
	if len(rentals) > 0 {
		stats.AverageDays = float64(totalDays) / float64(len(rentals))
	}
	return stats, nil
}

func (s *rentalService) validateBooking(ctx context.Context, actor domain.Actor, start, end time.Time) error {
	if end.Before(start) {
		return &domain.ValidationError{Field: "end_date", Reason: "end date must not be before start date"}
	}
	if actor.IsStaff() {
		return nil
	}
	if s.settings.MaintenanceMode(ctx) {
		return &domain.ValidationError{Field: "", Reason: "bookings are paused while the system is in maintenance mode"}
	}
	if s.settings.AdvanceNoticeHours(ctx) > 0 {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, start.Location())
		if start.Before(today) {
			return &domain.ValidationError{Field: "start_date", Reason: "start date must not be in the past"}
		}
	}
	return nil
}

func (s *rentalService) notifyCustomer(ctx context.Context, req *domain.RentalRequest, car *domain.Car) {
	if s.email == nil {
		return
	}
	customer, err := s.store.Customers().GetByID(ctx, req.CustomerID)
	if err != nil || customer == nil {
		return
	}
	_ = s.email.SendRentalStatusEmail(ctx, customer.Email, customer.DisplayName(), req, car)
}

func appendReturnNotes(existing, returnNotes string) string {
	if existing == "" {
		return "RETURNED: " + returnNotes
	}
	return existing + "\n\nRETURNED: " + returnNotes
}

func diff(from, to any) map[string]any {
	return map[string]any{"from": from, "to": to}
}
