package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/service"
)

const dateLayout = "2006-01-02"

type createRentalRequest struct {
	CarID      int32  `json:"car_id"`
	CustomerID int32  `json:"customer_id,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Notes      string `json:"notes,omitempty"`
}

type editRentalRequest struct {
	CustomerID *int32  `json:"customer_id,omitempty"`
	CarID      *int32  `json:"car_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type completeRentalRequest struct {
	ReturnNotes string `json:"return_notes,omitempty"`
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, &domain.ValidationError{Field: "id", Reason: "must be a number"}
	}
	return int32(id), nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Reason: "must be formatted as YYYY-MM-DD"}
	}
	return t, nil
}

// createRentalRequest books for the calling customer. The customer record is
// resolved from the account, never taken from the payload.
func (h *Handler) createRentalRequest(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.Users.GetByID(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "account not found", Code: "UNAUTHORIZED"})
		return
	}
	customer, err := h.Customers.ResolveForUser(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.Rentals.Create(r.Context(), actor, service.CreateRentalInput{
		CustomerID: customer.ID,
		CarID:      req.CarID,
		StartDate:  start,
		EndDate:    end,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *Handler) listRentalRequests(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.RentalStatusPending
	}
	rentals, err := h.Rentals.ListByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *Handler) getRentalRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.Rentals.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) approveRentalRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.Rentals.Approve(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) rejectRentalRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.Rentals.Reject(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) completeRentalRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req completeRentalRequest
	if r.Body != nil {
		// Body optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	rental, err := h.Rentals.Complete(r.Context(), actorFrom(r.Context()), id, req.ReturnNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) editRentalRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req editRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	edit := service.RentalEdit{
		CustomerID: req.CustomerID,
		CarID:      req.CarID,
		Notes:      req.Notes,
	}
	if req.Status != nil {
		status := domain.RentalStatus(*req.Status)
		edit.Status = &status
	}
	if req.StartDate != nil {
		start, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			writeError(w, err)
			return
		}
		edit.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			writeError(w, err)
			return
		}
		edit.EndDate = &end
	}

	rental, err := h.Rentals.Edit(r.Context(), actorFrom(r.Context()), id, edit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) deleteRentalRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Rentals.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) createWalkIn(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.Rentals.CreateWalkIn(r.Context(), actorFrom(r.Context()), service.CreateRentalInput{
		CustomerID: req.CustomerID,
		CarID:      req.CarID,
		StartDate:  start,
		EndDate:    end,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *Handler) todayActiveWalkIns(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.Rentals.TodayActiveWalkIns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *Handler) walkInHistory(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := parseDate("from", v)
		if err != nil {
			writeError(w, err)
			return
		}
		from = &parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := parseDate("to", v)
		if err != nil {
			writeError(w, err)
			return
		}
		to = &parsed
	}

	stats, err := h.Rentals.CompletedHistory(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) availableCars(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate("start_date", r.URL.Query().Get("start_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", r.URL.Query().Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}

	cars, err := h.Rentals.AvailableCars(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}
