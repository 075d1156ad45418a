package catalog

import (
	"math"
	"time"

	"catalog-service/internal/models"
)

// OfferActive reports whether now falls inside the offer window.
// A missing bound is unbounded on that side.
func OfferActive(p models.PricingFields, now time.Time) bool {
	if p.OfferStart != nil && p.OfferStart.After(now) {
		return false
	}
	if p.OfferEnd != nil && p.OfferEnd.Before(now) {
		return false
	}
	return true
}

// EffectivePrice returns the price a buyer would pay at now: the sale
// price when one is set and its offer window is active, the base price
// otherwise. Nil means the entity carries no usable price; callers must
// treat that as "not purchasable", never as zero.
func EffectivePrice(p models.PricingFields, now time.Time) *float64 {
	if p.SalePrice != nil && OfferActive(p, now) {
		return p.SalePrice
	}
	return p.Price
}

// DiscountPercent returns the integer discount of effective against
// base, rounding half away from zero, clamped to be non-negative.
// Degenerate inputs (missing or non-positive base, effective >= base)
// yield 0.
func DiscountPercent(base, effective *float64) int {
	if base == nil || effective == nil {
		return 0
	}
	if *base <= 0 || *effective >= *base {
		return 0
	}
	pct := int(math.Round((*base - *effective) / *base * 100))
	if pct < 0 {
		return 0
	}
	return pct
}
