package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/service"
)

// AvailabilityHandler exposes the blocked-date registry over HTTP.
type AvailabilityHandler struct {
	availability service.AvailabilityService
}

func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

type blockDatesRequest struct {
	RoomTypeID string   `json:"room_type_id"`
	Dates      []string `json:"dates"`
	Reason     string   `json:"reason"`
}

type unblockDatesRequest struct {
	RoomTypeID string   `json:"room_type_id"`
	Dates      []string `json:"dates"`
}

func (h *AvailabilityHandler) HandleListBlocked(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.availability.GetBlockedDates(r.Context(),
		mux.Vars(r)["propertyID"], r.URL.Query().Get("room_type_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocked_dates": blocked})
}

func (h *AvailabilityHandler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var req blockDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRequest))
		return
	}
	err := h.availability.BlockDates(r.Context(), requesterID(r),
		mux.Vars(r)["propertyID"], req.RoomTypeID, req.Dates, domain.BlockReason(req.Reason))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AvailabilityHandler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	var req unblockDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRequest))
		return
	}
	err := h.availability.UnblockDates(r.Context(), requesterID(r),
		mux.Vars(r)["propertyID"], req.RoomTypeID, req.Dates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AvailabilityHandler) HandleMaxCheckout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	checkIn := r.URL.Query().Get("check_in")
	maxDate, possible, err := h.availability.MaxCheckoutDate(r.Context(),
		vars["propertyID"], vars["roomTypeID"], checkIn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"check_in":          checkIn,
		"max_checkout_date": maxDate,
		"stay_possible":     possible,
	})
}
