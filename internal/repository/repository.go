package repository

import (
	"context"

	"kottage-backend/internal/domain"
)

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	GetRoomType(ctx context.Context, propertyID, roomTypeID string) (*domain.RoomType, error)

	// AdjustInventory shifts quantity_available by delta, clamped to
	// [0, total_quantity], and returns the value written.
	AdjustInventory(ctx context.Context, propertyID, roomTypeID string, delta int32) (int32, error)
	SetInventory(ctx context.Context, propertyID, roomTypeID string, quantity int32) error
}

type BlockedDateRepository interface {
	// ListByProperty returns all blocks for a property, optionally filtered
	// to one room type (empty means all), sorted ascending by date.
	ListByProperty(ctx context.Context, propertyID, roomTypeID string) ([]domain.BlockedDate, error)

	// ListInRange returns the blocked dates of one room type within
	// [start, end] inclusive, as a date-string set.
	ListInRange(ctx context.Context, propertyID, roomTypeID, start, end string) (map[string]bool, error)

	// Block idempotently writes one record per date in a single multi-path
	// update; re-blocking an already-blocked date overwrites it.
	Block(ctx context.Context, blocks []domain.BlockedDate) error

	// Acquire writes each block only if its date is free, as conditional
	// creates. On any conflict it releases the blocks it did acquire and
	// reports domain.ErrDateAlreadyBlocked.
	Acquire(ctx context.Context, blocks []domain.BlockedDate) error

	// Unblock removes the records for the given dates; missing dates are
	// a no-op.
	Unblock(ctx context.Context, propertyID, roomTypeID string, dates []string) error
}

type ReservationRepository interface {
	// Create persists the reservation and the per-user index entry in one
	// multi-path update.
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
}
