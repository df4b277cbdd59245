package domain

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Promotion is a time- and condition-bounded discount rule attached to a
// room type or to the whole property. A room-level promotion takes
// precedence over property-level ones. Pricing treats promotions as
// read-only.
type Promotion struct {
	ID           string       `json:"id,omitempty"`
	Name         string       `json:"name,omitempty"`
	DiscountType DiscountType `json:"discount_type"`
	// DiscountValue is a percentage (0-100) for percentage discounts and a
	// cent amount for fixed discounts.
	DiscountValue float64 `json:"discount_value"`
	// Validity window, inclusive on both ends, as YYYY-MM-DD.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
	// MinNights/MaxNights bound the stay length; zero means unbounded.
	MinNights int32 `json:"min_nights,omitempty"`
	MaxNights int32 `json:"max_nights,omitempty"`
	// BlackoutDates are YYYY-MM-DD dates on which the promotion never
	// applies, keyed off the check-in date.
	BlackoutDates []string `json:"blackout_dates,omitempty"`
	// DaysOfWeek restricts the check-in weekday (0 = Sunday .. 6 = Saturday).
	// Empty means any day.
	DaysOfWeek []int `json:"days_of_week,omitempty"`
}
