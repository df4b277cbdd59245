// Package pricing computes the effective nightly price for a room given the
// candidate promotions. Calculate is a pure function: identical requests
// always produce identical quotes, and omitting the date context means "no
// date context", never "use the current time".
package pricing

import (
	"math"

	"kottage-backend/internal/availability"
	"kottage-backend/internal/domain"
)

// QuoteRequest names every input of a price calculation explicitly.
type QuoteRequest struct {
	Room *domain.RoomType
	// PropertyPromotions are the property-level candidates, consulted in
	// list order when the room carries no active promotion of its own.
	PropertyPromotions []domain.Promotion
	// CheckIn is the check-in date or timestamp; empty means no date
	// context, which skips all date-based eligibility checks.
	CheckIn string
	// Nights is the stay length; zero means unknown, which skips the
	// min/max night bounds.
	Nights int32
}

// Quote is the result of a price calculation. All amounts are per night,
// in cents.
type Quote struct {
	OriginalCents    int32             `json:"original_cents"`
	DiscountCents    int32             `json:"discount_cents"`
	FinalCents       int32             `json:"final_cents"`
	SavingsCents     int32             `json:"savings_cents"`
	PromotionApplied bool              `json:"promotion_applied"`
	Promotion        *domain.Promotion `json:"promotion,omitempty"`
}

// Calculate determines the nightly price actually charged for the room.
// A room-level active promotion wins over property-level ones; among
// property promotions the first active one in list order is used. Any
// failed eligibility check reverts to the unmodified base price.
func Calculate(req QuoteRequest) Quote {
	base := req.Room.PricePerNightCents
	quote := Quote{
		OriginalCents: base,
		FinalCents:    base,
	}

	promo := selectPromotion(req.Room, req.PropertyPromotions)
	if promo == nil || !eligible(promo, req.CheckIn, req.Nights) {
		return quote
	}

	discount := discountCents(promo, base)
	final := base - discount
	if final < 0 {
		final = 0
		discount = base
	}

	quote.DiscountCents = discount
	quote.FinalCents = final
	quote.SavingsCents = base - final
	quote.PromotionApplied = true
	quote.Promotion = promo
	return quote
}

// selectPromotion picks the candidate promotion: the room's own active
// promotion first, otherwise the first active property-level promotion in
// list order. The list-order tie-break is deliberate; promotions carry no
// priority field.
func selectPromotion(room *domain.RoomType, propertyPromos []domain.Promotion) *domain.Promotion {
	if room.Promotion != nil && room.Promotion.IsActive {
		return room.Promotion
	}
	for i := range propertyPromos {
		if propertyPromos[i].IsActive {
			return &propertyPromos[i]
		}
	}
	return nil
}

// eligible runs the date and stay-length checks in order. Checks that lack
// their input (no check-in date, unknown night count) pass vacuously.
func eligible(p *domain.Promotion, checkIn string, nights int32) bool {
	if checkIn != "" {
		day := availability.Day(checkIn)

		// Validity window, inclusive on both ends. ISO dates compare
		// correctly as strings.
		if p.StartDate != "" && day < p.StartDate {
			return false
		}
		if p.EndDate != "" && day > p.EndDate {
			return false
		}

		for _, blackout := range p.BlackoutDates {
			if day == blackout {
				return false
			}
		}

		if len(p.DaysOfWeek) > 0 {
			d, err := availability.ParseDay(checkIn)
			if err != nil {
				return false
			}
			weekday := int(d.Weekday())
			found := false
			for _, allowed := range p.DaysOfWeek {
				if allowed == weekday {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	if nights > 0 {
		if p.MinNights > 0 && nights < p.MinNights {
			return false
		}
		if p.MaxNights > 0 && nights > p.MaxNights {
			return false
		}
	}

	return true
}

// discountCents converts the promotion's discount into a cent amount
// against the base nightly price. Fixed discounts are capped at the base
// price so the final price never goes negative.
func discountCents(p *domain.Promotion, base int32) int32 {
	switch p.DiscountType {
	case domain.DiscountTypePercentage:
		return int32(math.Round(float64(base) * p.DiscountValue / 100))
	case domain.DiscountTypeFixed:
		d := int32(p.DiscountValue)
		if d > base {
			return base
		}
		return d
	default:
		return 0
	}
}
