package domain

// Property is a rentable listing (a "kottage") owning one or more room types.
type Property struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	OwnerEmail  string `json:"owner_email,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// RequireApproval routes new bookings through PENDING until the owner
	// approves them. Direct-confirm properties skip PENDING entirely.
	RequireApproval bool                `json:"require_approval,omitempty"`
	RoomTypes       map[string]RoomType `json:"room_types,omitempty"`
	Promotions      []Promotion         `json:"promotions,omitempty"`
	CreatedOn       string              `json:"created_on,omitempty"`
}

// PropertyStub is the denormalized property reference stored on a reservation.
type PropertyStub struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomType is a bookable category of room within a property.
// All prices are in cents.
type RoomType struct {
	ID                 string `json:"id"`
	PropertyID         string `json:"property_id"`
	Name               string `json:"name"`
	PricePerNightCents int32  `json:"price_per_night_cents"`
	MaxOccupancy       int32  `json:"max_occupancy"`
	// TotalQuantity is the number of physical units of this room type.
	// QuantityAvailable is the derived remaining count; it is decremented on
	// confirmed bookings, incremented on cancellation, no-show and checkout,
	// and never goes below zero. The reconciliation job recomputes it from
	// the set of active reservations.
	TotalQuantity     int32      `json:"total_quantity"`
	QuantityAvailable int32      `json:"quantity_available"`
	Promotion         *Promotion `json:"promotion,omitempty"`
}
