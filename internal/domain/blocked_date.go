package domain

import "fmt"

type BlockReason string

const (
	BlockReasonReservation BlockReason = "reservation"
	BlockReasonMaintenance BlockReason = "maintenance"
	BlockReasonManual      BlockReason = "manual"
)

// BlockedDate marks one calendar day as unavailable for one room type.
// At most one block exists per (property, room type, date); the record's
// presence alone makes the date unbookable.
type BlockedDate struct {
	PropertyID string      `json:"property_id"`
	RoomTypeID string      `json:"room_type_id"`
	Date       string      `json:"date"` // YYYY-MM-DD
	Reason     BlockReason `json:"reason"`
	// ReservationID back-references the reservation that consumed the date
	// when Reason is "reservation".
	ReservationID string `json:"reservation_id,omitempty"`
	CreatedOn     string `json:"created_on,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
}

// BlockedDateKey builds the composite store key for a block record.
func BlockedDateKey(propertyID, roomTypeID, date string) string {
	return fmt.Sprintf("%s_%s_%s", propertyID, roomTypeID, date)
}

// Key returns the composite store key for this block.
func (b BlockedDate) Key() string {
	return BlockedDateKey(b.PropertyID, b.RoomTypeID, b.Date)
}
