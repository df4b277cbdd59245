package domain

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "PENDING"
	ReservationStatusConfirmed  ReservationStatus = "CONFIRMED"
	ReservationStatusCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationStatusCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationStatusCompleted  ReservationStatus = "COMPLETED"
	ReservationStatusCancelled  ReservationStatus = "CANCELLED"
	ReservationStatusNoShow     ReservationStatus = "NO_SHOW"
)

var statusTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusCheckedIn, ReservationStatusCancelled, ReservationStatusNoShow},
	ReservationStatusCheckedIn:  {ReservationStatusCheckedOut},
	ReservationStatusCheckedOut: {ReservationStatusCompleted},
}

// CanTransitionTo reports whether the status machine allows moving from s to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OccupiesDates reports whether a reservation in this status should hold
// date blocks and consume inventory. Cancelled and no-show stays release
// their dates; checked-out and completed stays keep their historical blocks
// but no longer count against future inventory.
func (s ReservationStatus) OccupiesDates() bool {
	return s == ReservationStatusConfirmed || s == ReservationStatusCheckedIn
}

type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Payment is the price snapshot captured when the reservation is created.
// All amounts are in cents; totals are never recomputed from live room
// prices afterwards.
type Payment struct {
	NightlyRateCents    int32  `json:"nightly_rate_cents"`
	Nights              int32  `json:"nights"`
	NightsSubtotalCents int32  `json:"nights_subtotal_cents"`
	CleaningFeeCents    int32  `json:"cleaning_fee_cents"`
	ServiceFeeCents     int32  `json:"service_fee_cents"`
	TotalCents          int32  `json:"total_cents"`
	PromotionApplied    bool   `json:"promotion_applied"`
	PromotionID         string `json:"promotion_id,omitempty"`
}

// Reservation is a pending or confirmed booking of one room type for a
// guest party over a date range. CheckIn/CheckOut are RFC 3339 timestamps;
// the occupied calendar days are [CheckIn, CheckOut) — the checkout day
// itself is never occupied.
type Reservation struct {
	ID       string       `json:"id"`
	Property PropertyStub `json:"property"`
	// PropertyID duplicates Property.ID at the top level so store queries
	// can filter on a flat child field.
	PropertyID string            `json:"property_id"`
	RoomTypeID string            `json:"room_type_id"`
	Rooms      []string          `json:"rooms"`
	CheckIn    string            `json:"check_in"`
	CheckOut   string            `json:"check_out"`
	Guests     []Guest           `json:"guests"`
	TotalCents int32             `json:"total_cents"`
	Status     ReservationStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
	Payment    *Payment          `json:"payment,omitempty"`
	CreatedOn  string            `json:"created_on"`
	CreatedBy  string            `json:"created_by"`
	UpdatedOn  string            `json:"updated_on,omitempty"`
}
