package realtime

import (
	"context"
	"fmt"
	"sort"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/repository"
	"kottage-backend/internal/store"
)

type propertyRepository struct {
	store store.Store
}

func NewPropertyRepository(s store.Store) repository.PropertyRepository {
	return &propertyRepository{store: s}
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := r.store.Get(ctx, propertiesPath+"/"+id, &p); err != nil {
		return nil, persistErr("get property", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	hydrateRoomTypes(&p)
	return &p, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	var all map[string]domain.Property
	if err := r.store.Get(ctx, propertiesPath, &all); err != nil {
		return nil, persistErr("list properties", err)
	}
	properties := make([]domain.Property, 0, len(all))
	for id, p := range all {
		if p.ID == "" {
			p.ID = id
		}
		hydrateRoomTypes(&p)
		properties = append(properties, p)
	}
	sort.Slice(properties, func(i, j int) bool { return properties[i].ID < properties[j].ID })
	return properties, nil
}

func (r *propertyRepository) GetRoomType(ctx context.Context, propertyID, roomTypeID string) (*domain.RoomType, error) {
	p, err := r.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	rt, ok := p.RoomTypes[roomTypeID]
	if !ok {
		return nil, fmt.Errorf("room type %s in property %s: %w", roomTypeID, propertyID, domain.ErrNotFound)
	}
	return &rt, nil
}

func (r *propertyRepository) AdjustInventory(ctx context.Context, propertyID, roomTypeID string, delta int32) (int32, error) {
	rt, err := r.GetRoomType(ctx, propertyID, roomTypeID)
	if err != nil {
		return 0, err
	}

	quantity := rt.QuantityAvailable + delta
	if quantity < 0 {
		quantity = 0
	}
	if rt.TotalQuantity > 0 && quantity > rt.TotalQuantity {
		quantity = rt.TotalQuantity
	}

	if err := r.SetInventory(ctx, propertyID, roomTypeID, quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}

func (r *propertyRepository) SetInventory(ctx context.Context, propertyID, roomTypeID string, quantity int32) error {
	path := fmt.Sprintf("%s/%s/room_types/%s/quantity_available", propertiesPath, propertyID, roomTypeID)
	if err := r.store.Set(ctx, path, quantity); err != nil {
		return persistErr("set inventory", err)
	}
	return nil
}

// hydrateRoomTypes fills in the identity fields that the store layout keeps
// implicit (the map key is the room type id).
func hydrateRoomTypes(p *domain.Property) {
	for id, rt := range p.RoomTypes {
		changed := false
		if rt.ID == "" {
			rt.ID = id
			changed = true
		}
		if rt.PropertyID == "" {
			rt.PropertyID = p.ID
			changed = true
		}
		if changed {
			p.RoomTypes[id] = rt
		}
	}
}
