package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type TurfHandler struct {
	service ports.TurfService
}

func NewTurfHandler(service ports.TurfService) *TurfHandler {
	return &TurfHandler{service: service}
}

func (h *TurfHandler) ListTurfs(w http.ResponseWriter, r *http.Request) {
	turfs, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turfs)
}

type addTurfRequest struct {
	Name string `json:"name"`
}

func (h *TurfHandler) AddTurf(w http.ResponseWriter, r *http.Request) {
	var req addTurfRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turf, err := h.service.Add(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, turf)
}

type bulkAddRequest struct {
	Count  int    `json:"count"`
	Prefix string `json:"prefix"`
}

func (h *TurfHandler) BulkAddTurfs(w http.ResponseWriter, r *http.Request) {
	var req bulkAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turfs, err := h.service.BulkAdd(r.Context(), req.Count, req.Prefix)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, turfs)
}

type updateTurfRequest struct {
	Name              *string          `json:"name"`
	DefaultMinPlayers *int             `json:"default_min_players"`
	DefaultMaxPlayers *int             `json:"default_max_players"`
	DefaultPrice      *decimal.Decimal `json:"default_price"`
	Active            *bool            `json:"active"`
}

func (h *TurfHandler) UpdateTurf(w http.ResponseWriter, r *http.Request) {
	var req updateTurfRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turf, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), ports.UpdateTurfInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turf)
}

// DeleteTurf requires ?confirm=true.
func (h *TurfHandler) DeleteTurf(w http.ResponseWriter, r *http.Request) {
	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), confirm); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
