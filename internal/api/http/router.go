package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"kottage-backend/internal/security"
	"kottage-backend/internal/service"
)

// NewRouter wires every booking endpoint under /api/v1. Quote and
// availability reads are public; everything that writes requires a token.
func NewRouter(
	reservations service.ReservationService,
	availability service.AvailabilityService,
	tokenManager security.TokenManager,
) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	reservationHandler := NewReservationHandler(reservations)
	availabilityHandler := NewAvailabilityHandler(availability)

	api := router.PathPrefix("/api/v1").Subrouter()

	public := api.NewRoute().Subrouter()
	public.HandleFunc("/properties/{propertyID}/blocked-dates", availabilityHandler.HandleListBlocked).Methods("GET")
	public.HandleFunc("/properties/{propertyID}/rooms/{roomTypeID}/max-checkout", availabilityHandler.HandleMaxCheckout).Methods("GET")
	public.HandleFunc("/properties/{propertyID}/rooms/{roomTypeID}/quote", reservationHandler.HandleQuote).Methods("GET")

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokenManager))
	authed.HandleFunc("/properties/{propertyID}/reservations", reservationHandler.HandleCreate).Methods("POST")
	authed.HandleFunc("/properties/{propertyID}/reservations", reservationHandler.HandleListByProperty).Methods("GET")
	authed.HandleFunc("/reservations", reservationHandler.HandleListMine).Methods("GET")
	authed.HandleFunc("/reservations/{reservationID}", reservationHandler.HandleGet).Methods("GET")
	authed.HandleFunc("/reservations/{reservationID}/approve", reservationHandler.HandleApprove).Methods("POST")
	authed.HandleFunc("/reservations/{reservationID}/decline", reservationHandler.HandleDecline).Methods("POST")
	authed.HandleFunc("/reservations/{reservationID}/cancel", reservationHandler.HandleCancel).Methods("POST")
	authed.HandleFunc("/reservations/{reservationID}/checkin", reservationHandler.HandleCheckIn).Methods("POST")
	authed.HandleFunc("/reservations/{reservationID}/checkout", reservationHandler.HandleCheckOut).Methods("POST")
	authed.HandleFunc("/reservations/{reservationID}/complete", reservationHandler.HandleComplete).Methods("POST")
	authed.HandleFunc("/properties/{propertyID}/blocked-dates", availabilityHandler.HandleBlock).Methods("POST")
	authed.HandleFunc("/properties/{propertyID}/blocked-dates/unblock", availabilityHandler.HandleUnblock).Methods("POST")

	return router
}
