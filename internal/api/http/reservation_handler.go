package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/service"
)

// ReservationHandler exposes the reservation workflow over HTTP.
type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type createReservationRequest struct {
	RoomTypeID string         `json:"room_type_id"`
	CheckIn    string         `json:"check_in"`
	CheckOut   string         `json:"check_out"`
	Guests     []domain.Guest `json:"guests"`
	Notes      string         `json:"notes"`
}

type reservationResponse struct {
	Reservation *domain.Reservation `json:"reservation"`
	Warning     string              `json:"warning,omitempty"`
}

type declineRequest struct {
	Reason string `json:"reason"`
}

type quoteResponse struct {
	NightlyRateCents  int32  `json:"nightly_rate_cents"`
	OriginalRateCents int32  `json:"original_rate_cents"`
	Nights            int32  `json:"nights"`
	SavingsCents      int32  `json:"savings_cents"`
	PromotionApplied  bool   `json:"promotion_applied"`
	PromotionID       string `json:"promotion_id,omitempty"`
}

func (h *ReservationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRequest))
		return
	}

	res, err := h.reservations.ConfirmReservation(r.Context(), service.ConfirmReservationRequest{
		PropertyID:  mux.Vars(r)["propertyID"],
		RoomTypeID:  req.RoomTypeID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      req.Guests,
		Notes:       req.Notes,
		RequesterID: requesterID(r),
	})
	if err != nil {
		// The reservation survives a partial commit, so the client still
		// gets a 201 with the record plus a warning.
		var partial *domain.PartialCommitError
		if errors.As(err, &partial) && res != nil {
			writeJSON(w, http.StatusCreated, reservationResponse{
				Reservation: res,
				Warning:     partial.Error(),
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservationResponse{Reservation: res})
}

func (h *ReservationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.reservations.GetReservation(r.Context(), requesterID(r), mux.Vars(r)["reservationID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationResponse{Reservation: res})
}

func (h *ReservationHandler) HandleListByProperty(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.ListPropertyReservations(r.Context(), mux.Vars(r)["propertyID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (h *ReservationHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.ListUserReservations(r.Context(), requesterID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (h *ReservationHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func() (*domain.Reservation, error) {
		return h.reservations.ApproveReservation(r.Context(), requesterID(r), mux.Vars(r)["reservationID"])
	})
}

func (h *ReservationHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	var req declineRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	h.transition(w, r, func() (*domain.Reservation, error) {
		return h.reservations.DeclineReservation(r.Context(), requesterID(r), mux.Vars(r)["reservationID"], req.Reason)
	})
}

func (h *ReservationHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func() (*domain.Reservation, error) {
		return h.reservations.CancelReservation(r.Context(), requesterID(r), mux.Vars(r)["reservationID"])
	})
}

func (h *ReservationHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func() (*domain.Reservation, error) {
		return h.reservations.CheckInReservation(r.Context(), requesterID(r), mux.Vars(r)["reservationID"])
	})
}

func (h *ReservationHandler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func() (*domain.Reservation, error) {
		return h.reservations.CheckOutReservation(r.Context(), requesterID(r), mux.Vars(r)["reservationID"])
	})
}

func (h *ReservationHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func() (*domain.Reservation, error) {
		return h.reservations.CompleteReservation(r.Context(), requesterID(r), mux.Vars(r)["reservationID"])
	})
}

func (h *ReservationHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()
	quote, nights, err := h.reservations.QuoteStay(r.Context(),
		vars["propertyID"], vars["roomTypeID"], query.Get("check_in"), query.Get("check_out"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := quoteResponse{
		NightlyRateCents:  quote.FinalCents,
		OriginalRateCents: quote.OriginalCents,
		Nights:            nights,
		SavingsCents:      quote.SavingsCents,
		PromotionApplied:  quote.PromotionApplied,
	}
	if quote.Promotion != nil {
		resp.PromotionID = quote.Promotion.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReservationHandler) transition(w http.ResponseWriter, r *http.Request, apply func() (*domain.Reservation, error)) {
	res, err := apply()
	if err != nil {
		var partial *domain.PartialCommitError
		if errors.As(err, &partial) && res != nil {
			writeJSON(w, http.StatusOK, reservationResponse{Reservation: res, Warning: partial.Error()})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservationResponse{Reservation: res})
}
