package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kottage-backend/internal/availability"
	"kottage-backend/internal/domain"
	"kottage-backend/internal/logger"
	"kottage-backend/internal/pricing"
	"kottage-backend/internal/repository"
)

type reservationService struct {
	propertyRepo    repository.PropertyRepository
	blockedRepo     repository.BlockedDateRepository
	reservationRepo repository.ReservationRepository
	emailSvc        EmailService
	analytics       AnalyticsSink

	cleaningFeeCents  int32
	serviceFeePercent int32
}

func NewReservationService(
	propertyRepo repository.PropertyRepository,
	blockedRepo repository.BlockedDateRepository,
	reservationRepo repository.ReservationRepository,
	emailSvc EmailService,
	analytics AnalyticsSink,
	cleaningFeeCents, serviceFeePercent int32,
) ReservationService {
	return &reservationService{
		propertyRepo:      propertyRepo,
		blockedRepo:       blockedRepo,
		reservationRepo:   reservationRepo,
		emailSvc:          emailSvc,
		analytics:         analytics,
		cleaningFeeCents:  cleaningFeeCents,
		serviceFeePercent: serviceFeePercent,
	}
}

func (s *reservationService) ConfirmReservation(ctx context.Context, req ConfirmReservationRequest) (*domain.Reservation, error) {
	property, room, err := s.loadRoom(ctx, req.PropertyID, req.RoomTypeID)
	if err != nil {
		return nil, err
	}

	if len(req.Guests) == 0 {
		return nil, fmt.Errorf("at least one guest is required: %w", domain.ErrInvalidRequest)
	}
	if int32(len(req.Guests)) > room.MaxOccupancy {
		return nil, fmt.Errorf("%d guests exceed max occupancy %d: %w",
			len(req.Guests), room.MaxOccupancy, domain.ErrInvalidRequest)
	}

	nights, err := availability.Nights(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}

	// Availability pre-check against the current blocked set. This read is
	// advisory; the conditional block writes below are what actually
	// guarantee exclusivity under concurrency.
	blocked, err := s.blockedRepo.ListInRange(ctx, req.PropertyID, req.RoomTypeID,
		availability.Day(req.CheckIn), availability.Day(req.CheckOut))
	if err != nil {
		return nil, err
	}
	if availability.IsRangeBlocked(req.CheckIn, req.CheckOut, blocked) {
		return nil, domain.ErrRangeBlocked
	}

	quote := pricing.Calculate(pricing.QuoteRequest{
		Room:               room,
		PropertyPromotions: property.Promotions,
		CheckIn:            req.CheckIn,
		Nights:             nights,
	})

	subtotal := nights * quote.FinalCents
	serviceFee := subtotal * s.serviceFeePercent / 100
	total := subtotal + s.cleaningFeeCents + serviceFee

	now := time.Now().UTC().Format(time.RFC3339)
	res := &domain.Reservation{
		ID:         uuid.NewString(),
		Property:   domain.PropertyStub{ID: property.ID, Name: property.Name},
		PropertyID: property.ID,
		RoomTypeID: room.ID,
		Rooms:      []string{room.ID},
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		TotalCents: total,
		Notes:      req.Notes,
		Status:     domain.ReservationStatusConfirmed,
		Payment: &domain.Payment{
			NightlyRateCents:    quote.FinalCents,
			Nights:              nights,
			NightsSubtotalCents: subtotal,
			CleaningFeeCents:    s.cleaningFeeCents,
			ServiceFeeCents:     serviceFee,
			TotalCents:          total,
			PromotionApplied:    quote.PromotionApplied,
		},
		CreatedOn: now,
		CreatedBy: req.RequesterID,
	}
	if quote.Promotion != nil {
		res.Payment.PromotionID = quote.Promotion.ID
	}

	if property.RequireApproval {
		res.Status = domain.ReservationStatusPending
		if err := s.reservationRepo.Create(ctx, res); err != nil {
			return nil, err
		}
		if property.OwnerEmail != "" {
			_ = s.emailSvc.SendApprovalRequest(ctx, property.OwnerEmail, res.Guests[0].Name, res)
		}
		s.track(ctx, "reservation_pending", res)
		return res, nil
	}

	// Acquire the date blocks first. Each block is a conditional create on
	// its composite key, so two overlapping confirms cannot both succeed:
	// the loser sees a conflict before anything else is written.
	dates, err := availability.DatesInRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}
	if err := s.blockedRepo.Acquire(ctx, s.reservationBlocks(res, dates, now)); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Create(ctx, res); err != nil {
		// No reservation record exists, so release the dates and fail
		// totally rather than leaving a phantom hold.
		if uerr := s.blockedRepo.Unblock(ctx, res.PropertyID, res.RoomTypeID, dates); uerr != nil {
			logger.Error("Failed to release dates after aborted reservation create",
				"reservation_id", res.ID, "error", uerr)
		}
		return nil, err
	}

	if _, err := s.propertyRepo.AdjustInventory(ctx, res.PropertyID, res.RoomTypeID, -1); err != nil {
		return res, s.partialCommit(ctx, res, "inventory_decrement", err)
	}

	s.notifyGuest(ctx, res, s.emailSvc.SendReservationConfirmation)
	s.track(ctx, "reservation_confirmed", res)
	return res, nil
}

func (s *reservationService) ApproveReservation(ctx context.Context, ownerID, reservationID string) (*domain.Reservation, error) {
	res, _, err := s.loadForOwner(ctx, ownerID, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationStatusPending {
		return nil, fmt.Errorf("reservation is %s, not pending: %w", res.Status, domain.ErrInvalidTransition)
	}

	dates, err := availability.DatesInRange(res.CheckIn, res.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	// The dates may have been taken while the request sat pending; the
	// conditional creates decide it.
	if err := s.blockedRepo.Acquire(ctx, s.reservationBlocks(res, dates, now)); err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatusConfirmed
	res.UpdatedOn = now
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		if uerr := s.blockedRepo.Unblock(ctx, res.PropertyID, res.RoomTypeID, dates); uerr != nil {
			logger.Error("Failed to release dates after aborted approval",
				"reservation_id", res.ID, "error", uerr)
		}
		return nil, err
	}

	if _, err := s.propertyRepo.AdjustInventory(ctx, res.PropertyID, res.RoomTypeID, -1); err != nil {
		return res, s.partialCommit(ctx, res, "inventory_decrement", err)
	}

	s.notifyGuest(ctx, res, s.emailSvc.SendReservationConfirmation)
	s.track(ctx, "reservation_approved", res)
	return res, nil
}

func (s *reservationService) DeclineReservation(ctx context.Context, ownerID, reservationID, reason string) (*domain.Reservation, error) {
	res, _, err := s.loadForOwner(ctx, ownerID, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationStatusPending {
		return nil, fmt.Errorf("reservation is %s, not pending: %w", res.Status, domain.ErrInvalidTransition)
	}

	res.Status = domain.ReservationStatusCancelled
	res.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	if len(res.Guests) > 0 && res.Guests[0].Email != "" {
		_ = s.emailSvc.SendReservationDeclined(ctx, res.Guests[0].Email, res.Guests[0].Name, reason, res)
	}
	s.track(ctx, "reservation_declined", res)
	return res, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	res, property, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if requesterID != res.CreatedBy && requesterID != property.OwnerID {
		return nil, domain.ErrUnauthorized
	}
	if !res.Status.CanTransitionTo(domain.ReservationStatusCancelled) {
		return nil, fmt.Errorf("cannot cancel a %s reservation: %w", res.Status, domain.ErrInvalidTransition)
	}

	wasOccupying := res.Status.OccupiesDates()
	res.Status = domain.ReservationStatusCancelled
	res.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	// A pending reservation never blocked dates or touched inventory, so
	// the release applies to previously confirmed stays only.
	if wasOccupying {
		var failed []string
		var lastErr error
		dates, derr := availability.DatesInRange(res.CheckIn, res.CheckOut)
		if derr != nil {
			failed, lastErr = append(failed, "date_unblock"), derr
		} else if err := s.blockedRepo.Unblock(ctx, res.PropertyID, res.RoomTypeID, dates); err != nil {
			failed, lastErr = append(failed, "date_unblock"), err
		}
		if _, err := s.propertyRepo.AdjustInventory(ctx, res.PropertyID, res.RoomTypeID, +1); err != nil {
			failed, lastErr = append(failed, "inventory_increment"), err
		}
		if len(failed) > 0 {
			return res, s.partialCommitWrites(ctx, res, failed, lastErr)
		}
	}

	s.notifyGuest(ctx, res, s.emailSvc.SendReservationCancellation)
	s.track(ctx, "reservation_cancelled", res)
	return res, nil
}

func (s *reservationService) CheckInReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	res, property, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if requesterID != property.OwnerID {
		return nil, domain.ErrUnauthorized
	}
	if !res.Status.CanTransitionTo(domain.ReservationStatusCheckedIn) {
		return nil, fmt.Errorf("cannot check in a %s reservation: %w", res.Status, domain.ErrInvalidTransition)
	}

	res.Status = domain.ReservationStatusCheckedIn
	res.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	s.track(ctx, "reservation_checked_in", res)
	return res, nil
}

func (s *reservationService) CheckOutReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	res, property, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if requesterID != property.OwnerID {
		return nil, domain.ErrUnauthorized
	}
	if !res.Status.CanTransitionTo(domain.ReservationStatusCheckedOut) {
		return nil, fmt.Errorf("cannot check out a %s reservation: %w", res.Status, domain.ErrInvalidTransition)
	}

	res.Status = domain.ReservationStatusCheckedOut
	res.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	// The room goes back into bookable inventory; the stay's historical
	// date blocks stay where they are.
	if _, err := s.propertyRepo.AdjustInventory(ctx, res.PropertyID, res.RoomTypeID, +1); err != nil {
		return res, s.partialCommit(ctx, res, "inventory_increment", err)
	}
	s.track(ctx, "reservation_checked_out", res)
	return res, nil
}

func (s *reservationService) CompleteReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	res, property, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if requesterID != property.OwnerID {
		return nil, domain.ErrUnauthorized
	}
	if !res.Status.CanTransitionTo(domain.ReservationStatusCompleted) {
		return nil, fmt.Errorf("cannot complete a %s reservation: %w", res.Status, domain.ErrInvalidTransition)
	}

	res.Status = domain.ReservationStatusCompleted
	res.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}
	s.track(ctx, "reservation_completed", res)
	return res, nil
}

func (s *reservationService) MarkNoShow(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	res, _, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransitionTo(domain.ReservationStatusNoShow) {
		return nil, fmt.Errorf("cannot mark a %s reservation as no-show: %w", res.Status, domain.ErrInvalidTransition)
	}

	res.Status = domain.ReservationStatusNoShow
	res.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	// A no-show releases its dates and returns the room to inventory, same
	// as a cancellation.
	var failed []string
	var lastErr error
	dates, derr := availability.DatesInRange(res.CheckIn, res.CheckOut)
	if derr != nil {
		failed, lastErr = append(failed, "date_unblock"), derr
	} else if err := s.blockedRepo.Unblock(ctx, res.PropertyID, res.RoomTypeID, dates); err != nil {
		failed, lastErr = append(failed, "date_unblock"), err
	}
	if _, err := s.propertyRepo.AdjustInventory(ctx, res.PropertyID, res.RoomTypeID, +1); err != nil {
		failed, lastErr = append(failed, "inventory_increment"), err
	}
	if len(failed) > 0 {
		return res, s.partialCommitWrites(ctx, res, failed, lastErr)
	}

	s.track(ctx, "reservation_no_show", res)
	return res, nil
}

func (s *reservationService) GetReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	res, property, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if requesterID != res.CreatedBy && requesterID != property.OwnerID {
		return nil, domain.ErrUnauthorized
	}
	return res, nil
}

func (s *reservationService) ListPropertyReservations(ctx context.Context, propertyID string) ([]domain.Reservation, error) {
	return s.reservationRepo.ListByProperty(ctx, propertyID)
}

func (s *reservationService) ListUserReservations(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.reservationRepo.ListByUser(ctx, userID)
}

func (s *reservationService) QuoteStay(ctx context.Context, propertyID, roomTypeID, checkIn, checkOut string) (*pricing.Quote, int32, error) {
	property, room, err := s.loadRoom(ctx, propertyID, roomTypeID)
	if err != nil {
		return nil, 0, err
	}
	nights, err := availability.Nights(checkIn, checkOut)
	if err != nil {
		return nil, 0, fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}
	quote := pricing.Calculate(pricing.QuoteRequest{
		Room:               room,
		PropertyPromotions: property.Promotions,
		CheckIn:            checkIn,
		Nights:             nights,
	})
	return &quote, nights, nil
}

func (s *reservationService) loadRoom(ctx context.Context, propertyID, roomTypeID string) (*domain.Property, *domain.RoomType, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	room, ok := property.RoomTypes[roomTypeID]
	if !ok {
		return nil, nil, fmt.Errorf("room type %s: %w", roomTypeID, domain.ErrNotFound)
	}
	return property, &room, nil
}

func (s *reservationService) load(ctx context.Context, reservationID string) (*domain.Reservation, *domain.Property, error) {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	property, err := s.propertyRepo.GetByID(ctx, res.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return res, property, nil
}

func (s *reservationService) loadForOwner(ctx context.Context, ownerID, reservationID string) (*domain.Reservation, *domain.Property, error) {
	res, property, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if property.OwnerID != ownerID {
		return nil, nil, domain.ErrUnauthorized
	}
	return res, property, nil
}

func (s *reservationService) reservationBlocks(res *domain.Reservation, dates []string, now string) []domain.BlockedDate {
	blocks := make([]domain.BlockedDate, 0, len(dates))
	for _, d := range dates {
		blocks = append(blocks, domain.BlockedDate{
			PropertyID:    res.PropertyID,
			RoomTypeID:    res.RoomTypeID,
			Date:          d,
			Reason:        domain.BlockReasonReservation,
			ReservationID: res.ID,
			CreatedOn:     now,
			CreatedBy:     res.CreatedBy,
		})
	}
	return blocks
}

func (s *reservationService) partialCommit(ctx context.Context, res *domain.Reservation, write string, err error) error {
	return s.partialCommitWrites(ctx, res, []string{write}, err)
}

func (s *reservationService) partialCommitWrites(ctx context.Context, res *domain.Reservation, writes []string, err error) error {
	logger.PartialCommit(res.ID, writes, err)
	s.track(ctx, "reservation_partial_commit", res)
	return &domain.PartialCommitError{ReservationID: res.ID, FailedWrites: writes, Err: err}
}

func (s *reservationService) notifyGuest(ctx context.Context, res *domain.Reservation,
	send func(context.Context, string, string, *domain.Reservation) error) {
	if len(res.Guests) == 0 || res.Guests[0].Email == "" {
		return
	}
	if err := send(ctx, res.Guests[0].Email, res.Guests[0].Name, res); err != nil {
		logger.Warn("Failed to send reservation email", "reservation_id", res.ID, "error", err)
	}
}

func (s *reservationService) track(ctx context.Context, event string, res *domain.Reservation) {
	s.analytics.Track(ctx, event, map[string]string{
		"reservation_id": res.ID,
		"property_id":    res.PropertyID,
		"room_type_id":   res.RoomTypeID,
		"status":         string(res.Status),
	})
}
