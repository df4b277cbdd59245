package service

import (
	"context"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/pricing"
)

// ConfirmReservationRequest carries every input of a booking attempt.
type ConfirmReservationRequest struct {
	PropertyID  string
	RoomTypeID  string
	CheckIn     string
	CheckOut    string
	Guests      []domain.Guest
	Notes       string
	RequesterID string
}

type ReservationService interface {
	// ConfirmReservation validates the request, prices the stay, persists
	// the reservation, blocks the consumed dates and decrements inventory.
	// When only a dependent write fails the reservation is still returned,
	// together with a *domain.PartialCommitError.
	ConfirmReservation(ctx context.Context, req ConfirmReservationRequest) (*domain.Reservation, error)

	// Owner approval path for properties that require it.
	ApproveReservation(ctx context.Context, ownerID, reservationID string) (*domain.Reservation, error)
	DeclineReservation(ctx context.Context, ownerID, reservationID, reason string) (*domain.Reservation, error)

	CancelReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error)
	CheckInReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error)
	CheckOutReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error)
	CompleteReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error)
	MarkNoShow(ctx context.Context, reservationID string) (*domain.Reservation, error)

	GetReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error)
	ListPropertyReservations(ctx context.Context, propertyID string) ([]domain.Reservation, error)
	ListUserReservations(ctx context.Context, userID string) ([]domain.Reservation, error)

	// QuoteStay prices a prospective stay without writing anything.
	QuoteStay(ctx context.Context, propertyID, roomTypeID, checkIn, checkOut string) (*pricing.Quote, int32, error)
}

type AvailabilityService interface {
	GetBlockedDates(ctx context.Context, propertyID, roomTypeID string) ([]domain.BlockedDate, error)
	BlockDates(ctx context.Context, actorID, propertyID, roomTypeID string, dates []string, reason domain.BlockReason) error
	UnblockDates(ctx context.Context, actorID, propertyID, roomTypeID string, dates []string) error

	// MaxCheckoutDate returns the latest allowed checkout for a stay
	// beginning at checkIn, and false when no checkout after check-in is
	// possible.
	MaxCheckoutDate(ctx context.Context, propertyID, roomTypeID, checkIn string) (string, bool, error)
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, email, guestName string, res *domain.Reservation) error
	SendReservationCancellation(ctx context.Context, email, guestName string, res *domain.Reservation) error
	SendApprovalRequest(ctx context.Context, ownerEmail, guestName string, res *domain.Reservation) error
	SendReservationDeclined(ctx context.Context, email, guestName, reason string, res *domain.Reservation) error
}

// AnalyticsSink receives workflow events. It is injected at construction
// time; tests use the no-op sink.
type AnalyticsSink interface {
	Track(ctx context.Context, event string, attrs map[string]string)
}
