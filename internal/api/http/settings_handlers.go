package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"carrental-backoffice/internal/domain"
)

type updateSettingRequest struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings.All(r.Context()))
}

func (h *Handler) updateSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req updateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	typ := domain.SettingType(req.Type)
	switch typ {
	case domain.SettingTypeString, domain.SettingTypeBoolean, domain.SettingTypeInteger, domain.SettingTypeFloat:
	default:
		writeError(w, &domain.ValidationError{Field: "type", Reason: "unknown setting type"})
		return
	}

	if err := h.Settings.Set(r.Context(), actorFrom(r.Context()), key, req.Value, typ); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": req.Value, "type": req.Type})
}

func (h *Handler) listActivityLogs(w http.ResponseWriter, r *http.Request) {
	filter := domain.ActivityLogFilter{
		Action:   r.URL.Query().Get("action"),
		UserType: domain.UserType(r.URL.Query().Get("user_type")),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, &domain.ValidationError{Field: "from", Reason: "must be formatted as YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, &domain.ValidationError{Field: "to", Reason: "must be formatted as YYYY-MM-DD"})
			return
		}
		filter.To = &to
	}
	if v := r.URL.Query().Get("page"); v != "" {
		page, _ := strconv.Atoi(v)
		filter.Page = int32(page)
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		size, _ := strconv.Atoi(v)
		filter.PageSize = int32(size)
	}

	entries, total, err := h.Activity.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
	})
}
