package http

import (
	"encoding/json"
	"net/http"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/service"
)

type carRequest struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Description string `json:"description,omitempty"`
	Year        int32  `json:"year"`
	PriceCents  int32  `json:"price_cents"`
	Image       string `json:"image,omitempty"`
}

type carStatusRequest struct {
	Status string `json:"status"`
}

func (r carRequest) toInput() service.CarInput {
	return service.CarInput{
		Make:        r.Make,
		Model:       r.Model,
		Description: r.Description,
		Year:        r.Year,
		PriceCents:  r.PriceCents,
		Image:       r.Image,
	}
}

func (h *Handler) listCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Fleet.ListCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *Handler) getCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	car, err := h.Fleet.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *Handler) createCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	car, err := h.Fleet.CreateCar(r.Context(), actorFrom(r.Context()), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *Handler) updateCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	car, err := h.Fleet.UpdateCar(r.Context(), actorFrom(r.Context()), id, req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *Handler) deleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Fleet.DeleteCar(r.Context(), actorFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) setCarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req carStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	car, err := h.Fleet.SetStatus(r.Context(), actorFrom(r.Context()), id, domain.CarStatusCode(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *Handler) disableCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	car, err := h.Fleet.DisableCar(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *Handler) enableCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	car, err := h.Fleet.EnableCar(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *Handler) listCarStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Fleet.ListStatuses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}
