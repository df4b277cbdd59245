package jobs

import (
	"context"
	"time"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/logger"
)

// MarkNoShows flags confirmed reservations whose check-in day has passed
// without a check-in, releasing their dates and inventory.
func (jr *JobRunner) MarkNoShows() {
	jr.runWithRecovery("MarkNoShows", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		confirmed, err := jr.registry.ReservationRepository.ListByStatus(ctx, domain.ReservationStatusConfirmed)
		if err != nil {
			logger.Error("Failed to list confirmed reservations", "error", err)
			return
		}

		count := 0
		for _, res := range confirmed {
			if len(res.CheckIn) < 10 || res.CheckIn[:10] >= today {
				continue
			}
			if _, err := jr.services.Reservation.MarkNoShow(ctx, res.ID); err != nil {
				logger.Error("Failed to mark reservation as no-show",
					"reservation_id", res.ID, "error", err)
				continue
			}
			logger.Debug("Marked reservation as no-show",
				"reservation_id", res.ID,
				"property_id", res.PropertyID,
				"check_in", res.CheckIn)
			count++
		}

		logger.Info("Marked reservations as no-show", "count", count)
	})
}
