package service

import (
	"context"
	"fmt"
	"time"

	"kottage-backend/internal/availability"
	"kottage-backend/internal/domain"
	"kottage-backend/internal/repository"
)

type availabilityService struct {
	propertyRepo repository.PropertyRepository
	blockedRepo  repository.BlockedDateRepository
	analytics    AnalyticsSink
}

func NewAvailabilityService(
	propertyRepo repository.PropertyRepository,
	blockedRepo repository.BlockedDateRepository,
	analytics AnalyticsSink,
) AvailabilityService {
	return &availabilityService{
		propertyRepo: propertyRepo,
		blockedRepo:  blockedRepo,
		analytics:    analytics,
	}
}

func (s *availabilityService) GetBlockedDates(ctx context.Context, propertyID, roomTypeID string) ([]domain.BlockedDate, error) {
	return s.blockedRepo.ListByProperty(ctx, propertyID, roomTypeID)
}

func (s *availabilityService) BlockDates(ctx context.Context, actorID, propertyID, roomTypeID string, dates []string, reason domain.BlockReason) error {
	if len(dates) == 0 {
		return fmt.Errorf("no dates given: %w", domain.ErrInvalidRequest)
	}
	if reason == "" {
		reason = domain.BlockReasonManual
	}

	if err := s.authorizeOwner(ctx, actorID, propertyID, roomTypeID); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	blocks := make([]domain.BlockedDate, 0, len(dates))
	for _, d := range dates {
		if _, err := availability.ParseDay(d); err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
		}
		blocks = append(blocks, domain.BlockedDate{
			PropertyID: propertyID,
			RoomTypeID: roomTypeID,
			Date:       availability.Day(d),
			Reason:     reason,
			CreatedOn:  now,
			CreatedBy:  actorID,
		})
	}

	if err := s.blockedRepo.Block(ctx, blocks); err != nil {
		return err
	}
	s.analytics.Track(ctx, "dates_blocked", map[string]string{
		"property_id":  propertyID,
		"room_type_id": roomTypeID,
		"reason":       string(reason),
		"count":        fmt.Sprintf("%d", len(blocks)),
	})
	return nil
}

func (s *availabilityService) UnblockDates(ctx context.Context, actorID, propertyID, roomTypeID string, dates []string) error {
	if len(dates) == 0 {
		return fmt.Errorf("no dates given: %w", domain.ErrInvalidRequest)
	}
	if err := s.authorizeOwner(ctx, actorID, propertyID, roomTypeID); err != nil {
		return err
	}
	if err := s.blockedRepo.Unblock(ctx, propertyID, roomTypeID, dates); err != nil {
		return err
	}
	s.analytics.Track(ctx, "dates_unblocked", map[string]string{
		"property_id":  propertyID,
		"room_type_id": roomTypeID,
		"count":        fmt.Sprintf("%d", len(dates)),
	})
	return nil
}

// authorizeOwner verifies the actor owns the property and the room type
// exists before any block is written or removed.
func (s *availabilityService) authorizeOwner(ctx context.Context, actorID, propertyID, roomTypeID string) error {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property.OwnerID != actorID {
		return domain.ErrUnauthorized
	}
	if _, ok := property.RoomTypes[roomTypeID]; !ok {
		return fmt.Errorf("room type %s: %w", roomTypeID, domain.ErrNotFound)
	}
	return nil
}

func (s *availabilityService) MaxCheckoutDate(ctx context.Context, propertyID, roomTypeID, checkIn string) (string, bool, error) {
	start, err := availability.ParseDay(checkIn)
	if err != nil {
		return "", false, fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest)
	}

	windowEnd := start.AddDate(0, availability.MaxLookaheadMonths, 0).Format("2006-01-02")
	blocked, err := s.blockedRepo.ListInRange(ctx, propertyID, roomTypeID, availability.Day(checkIn), windowEnd)
	if err != nil {
		return "", false, err
	}

	checkout, ok := availability.MaxCheckoutDate(checkIn, blocked)
	return checkout, ok, nil
}
