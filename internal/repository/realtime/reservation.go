package realtime

import (
	"context"
	"fmt"
	"sort"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/repository"
	"kottage-backend/internal/store"
)

type reservationRepository struct {
	store store.Store
}

func NewReservationRepository(s store.Store) repository.ReservationRepository {
	return &reservationRepository{store: s}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	updates := map[string]any{
		reservationsPath + "/" + res.ID: res,
	}
	if res.CreatedBy != "" {
		updates[fmt.Sprintf("%s/%s/reservations/%s", usersPath, res.CreatedBy, res.ID)] = true
	}
	if err := r.store.MultiUpdate(ctx, updates); err != nil {
		return persistErr("create reservation", err)
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.store.Get(ctx, reservationsPath+"/"+id, &res); err != nil {
		return nil, persistErr("get reservation", err)
	}
	if res.ID == "" {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	return &res, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	if err := r.store.Set(ctx, reservationsPath+"/"+res.ID, res); err != nil {
		return persistErr("update reservation", err)
	}
	return nil
}

func (r *reservationRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Reservation, error) {
	var records map[string]domain.Reservation
	if err := r.store.Query(ctx, reservationsPath, "property_id", propertyID, &records); err != nil {
		return nil, persistErr("list reservations by property", err)
	}
	return sortedReservations(records), nil
}

func (r *reservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	var records map[string]domain.Reservation
	if err := r.store.Query(ctx, reservationsPath, "status", string(status), &records); err != nil {
		return nil, persistErr("list reservations by status", err)
	}
	return sortedReservations(records), nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	var index map[string]bool
	path := fmt.Sprintf("%s/%s/reservations", usersPath, userID)
	if err := r.store.Get(ctx, path, &index); err != nil {
		return nil, persistErr("list user reservations", err)
	}

	reservations := make([]domain.Reservation, 0, len(index))
	for id := range index {
		res, err := r.GetByID(ctx, id)
		if err != nil {
			// A dangling index entry is not fatal for the listing.
			continue
		}
		reservations = append(reservations, *res)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedOn > reservations[j].CreatedOn
	})
	return reservations, nil
}

func sortedReservations(records map[string]domain.Reservation) []domain.Reservation {
	reservations := make([]domain.Reservation, 0, len(records))
	for _, res := range records {
		reservations = append(reservations, res)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedOn > reservations[j].CreatedOn
	})
	return reservations
}
