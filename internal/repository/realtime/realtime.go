// Package realtime implements the repository interfaces on top of the
// realtime key-value store. Collection layout:
//
//	properties/{propertyId}
//	properties/{propertyId}/room_types/{roomTypeId}
//	reservations/{reservationId}
//	blockedDates/{propertyId}_{roomTypeId}_{date}
//	users/{uid}/reservations/{reservationId}
package realtime

import (
	"fmt"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/repository"
	"kottage-backend/internal/store"
)

const (
	propertiesPath   = "properties"
	reservationsPath = "reservations"
	blockedDatesPath = "blockedDates"
	usersPath        = "users"
)

// Registry bundles all store-backed repositories.
type Registry struct {
	PropertyRepository    repository.PropertyRepository
	BlockedDateRepository repository.BlockedDateRepository
	ReservationRepository repository.ReservationRepository
}

// NewRegistry creates all repositories against the given store backend.
func NewRegistry(s store.Store) *Registry {
	return &Registry{
		PropertyRepository:    NewPropertyRepository(s),
		BlockedDateRepository: NewBlockedDateRepository(s),
		ReservationRepository: NewReservationRepository(s),
	}
}

// persistErr wraps a raw store failure into the persistence error class.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrPersistence, err)
}
