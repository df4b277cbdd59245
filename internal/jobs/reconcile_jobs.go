package jobs

import (
	"context"
	"time"

	"kottage-backend/internal/availability"
	"kottage-backend/internal/domain"
	"kottage-backend/internal/logger"
)

// ReconcileAvailability re-derives the blocked-date registry and room
// inventory from the reservations that currently occupy dates. It repairs
// the gaps a partial commit can leave: reservations whose dependent block
// or inventory writes never landed, and stale blocks whose reservation has
// since been released.
func (jr *JobRunner) ReconcileAvailability() {
	jr.runWithRecovery("ReconcileAvailability", func() {
		ctx := context.Background()

		properties, err := jr.registry.PropertyRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list properties", "error", err)
			return
		}

		for _, property := range properties {
			reservations, err := jr.registry.ReservationRepository.ListByProperty(ctx, property.ID)
			if err != nil {
				logger.Error("Failed to list reservations", "property_id", property.ID, "error", err)
				continue
			}
			for roomTypeID, room := range property.RoomTypes {
				jr.reconcileRoom(ctx, property.ID, roomTypeID, room, reservations)
			}
		}
	})
}

func (jr *JobRunner) reconcileRoom(ctx context.Context, propertyID, roomTypeID string,
	room domain.RoomType, reservations []domain.Reservation) {

	// Expected reservation blocks, derived from the occupying reservations.
	// A confirmed or checked-in reservation holds one room until checkout,
	// which is also when inventory is returned.
	expected := make(map[string]domain.BlockedDate)
	activeCount := int32(0)
	for _, res := range reservations {
		if res.RoomTypeID != roomTypeID || !res.Status.OccupiesDates() {
			continue
		}
		activeCount++
		dates, err := availability.DatesInRange(res.CheckIn, res.CheckOut)
		if err != nil {
			logger.Warn("Skipping reservation with bad dates", "reservation_id", res.ID, "error", err)
			continue
		}
		for _, d := range dates {
			expected[d] = domain.BlockedDate{
				PropertyID:    propertyID,
				RoomTypeID:    roomTypeID,
				Date:          d,
				Reason:        domain.BlockReasonReservation,
				ReservationID: res.ID,
				CreatedOn:     res.CreatedOn,
				CreatedBy:     res.CreatedBy,
			}
		}
	}

	actual, err := jr.registry.BlockedDateRepository.ListByProperty(ctx, propertyID, roomTypeID)
	if err != nil {
		logger.Error("Failed to list blocked dates", "property_id", propertyID,
			"room_type_id", roomTypeID, "error", err)
		return
	}

	// Past reservation blocks stay behind as the historical record of a
	// completed stay; only upcoming dates are released.
	today := time.Now().UTC().Format("2006-01-02")
	var missing []domain.BlockedDate
	var stale []string
	seen := make(map[string]bool)
	for _, block := range actual {
		seen[block.Date] = true
		if block.Reason != domain.BlockReasonReservation || block.Date < today {
			continue
		}
		if _, ok := expected[block.Date]; !ok {
			stale = append(stale, block.Date)
		}
	}
	for date, block := range expected {
		if !seen[date] {
			missing = append(missing, block)
		}
	}

	if len(missing) > 0 {
		if err := jr.registry.BlockedDateRepository.Block(ctx, missing); err != nil {
			logger.Error("Failed to restore missing blocks", "property_id", propertyID,
				"room_type_id", roomTypeID, "error", err)
		} else {
			logger.Info("Restored missing reservation blocks", "property_id", propertyID,
				"room_type_id", roomTypeID, "count", len(missing))
		}
	}
	if len(stale) > 0 {
		if err := jr.registry.BlockedDateRepository.Unblock(ctx, propertyID, roomTypeID, stale); err != nil {
			logger.Error("Failed to remove stale blocks", "property_id", propertyID,
				"room_type_id", roomTypeID, "error", err)
		} else {
			logger.Info("Removed stale reservation blocks", "property_id", propertyID,
				"room_type_id", roomTypeID, "count", len(stale))
		}
	}

	want := room.TotalQuantity - activeCount
	if want < 0 {
		want = 0
	}
	if want != room.QuantityAvailable {
		if err := jr.registry.PropertyRepository.SetInventory(ctx, propertyID, roomTypeID, want); err != nil {
			logger.Error("Failed to correct inventory", "property_id", propertyID,
				"room_type_id", roomTypeID, "error", err)
			return
		}
		logger.Info("Corrected room inventory", "property_id", propertyID,
			"room_type_id", roomTypeID, "was", room.QuantityAvailable, "now", want)
	}
}
