package realtime

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/logger"
	"kottage-backend/internal/repository"
	"kottage-backend/internal/store"
)

type blockedDateRepository struct {
	store store.Store
}

func NewBlockedDateRepository(s store.Store) repository.BlockedDateRepository {
	return &blockedDateRepository{store: s}
}

func (r *blockedDateRepository) ListByProperty(ctx context.Context, propertyID, roomTypeID string) ([]domain.BlockedDate, error) {
	var records map[string]domain.BlockedDate
	if err := r.store.Query(ctx, blockedDatesPath, "property_id", propertyID, &records); err != nil {
		return nil, persistErr("list blocked dates", err)
	}

	blocks := make([]domain.BlockedDate, 0, len(records))
	for _, b := range records {
		if roomTypeID != "" && b.RoomTypeID != roomTypeID {
			continue
		}
		blocks = append(blocks, b)
	}
	// ISO dates sort correctly as strings.
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Date < blocks[j].Date })
	return blocks, nil
}

func (r *blockedDateRepository) ListInRange(ctx context.Context, propertyID, roomTypeID, start, end string) (map[string]bool, error) {
	blocks, err := r.ListByProperty(ctx, propertyID, roomTypeID)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]bool)
	for _, b := range blocks {
		if b.Date >= start && b.Date <= end {
			dates[b.Date] = true
		}
	}
	return dates, nil
}

func (r *blockedDateRepository) Block(ctx context.Context, blocks []domain.BlockedDate) error {
	if len(blocks) == 0 {
		return nil
	}
	updates := make(map[string]any, len(blocks))
	for _, b := range blocks {
		updates[blockedDatesPath+"/"+b.Key()] = b
	}
	// One multi-path write: the whole batch fails or succeeds together, so
	// a partial insert can never go unreported.
	if err := r.store.MultiUpdate(ctx, updates); err != nil {
		return persistErr(fmt.Sprintf("block %d dates", len(blocks)), err)
	}
	return nil
}

func (r *blockedDateRepository) Acquire(ctx context.Context, blocks []domain.BlockedDate) error {
	acquired := make([]domain.BlockedDate, 0, len(blocks))
	for _, b := range blocks {
		err := r.store.CreateIfAbsent(ctx, blockedDatesPath+"/"+b.Key(), b)
		if err == nil {
			acquired = append(acquired, b)
			continue
		}
		r.release(ctx, acquired)
		if errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", b.Date, domain.ErrDateAlreadyBlocked)
		}
		return persistErr("acquire blocked date "+b.Date, err)
	}
	return nil
}

func (r *blockedDateRepository) Unblock(ctx context.Context, propertyID, roomTypeID string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	updates := make(map[string]any, len(dates))
	for _, d := range dates {
		updates[blockedDatesPath+"/"+domain.BlockedDateKey(propertyID, roomTypeID, d)] = nil
	}
	if err := r.store.MultiUpdate(ctx, updates); err != nil {
		return persistErr(fmt.Sprintf("unblock %d dates", len(dates)), err)
	}
	return nil
}

// release frees blocks acquired before a failed Acquire. Best effort: a
// stray leftover block is repaired by the reconciliation job.
func (r *blockedDateRepository) release(ctx context.Context, acquired []domain.BlockedDate) {
	for _, b := range acquired {
		if err := r.store.Set(ctx, blockedDatesPath+"/"+b.Key(), nil); err != nil {
			logger.Error("Failed to release blocked date after aborted acquire",
				"property_id", b.PropertyID, "room_type_id", b.RoomTypeID, "date", b.Date, "error", err)
		}
	}
}
