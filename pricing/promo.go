package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

// PromoContext carries the request-time facts a validity check needs. The
// service layer fills GuestUses from the redemption table; the code's own
// UsedCount covers the global cap.
type PromoContext struct {
	Now       time.Time
	Nights    int
	GuestUses int
}

// ValidatePromo runs the validity checks in a fixed order and returns the
// first failure as a *PromoError with its named reason. The order matters:
// an expired code reports EXPIRED even if it is also inactive.
func ValidatePromo(promo models.PromoCode, ctx PromoContext) error {
	if promo.ValidTo != nil && ctx.Now.After(*promo.ValidTo) {
		return &PromoError{Code: promo.Code, Reason: PromoExpired}
	}
	if promo.ValidFrom != nil && ctx.Now.Before(*promo.ValidFrom) {
		return &PromoError{Code: promo.Code, Reason: PromoNotYetValid}
	}
	if promo.MaxUses != nil && promo.UsedCount >= *promo.MaxUses {
		return &PromoError{Code: promo.Code, Reason: PromoUsageLimit}
	}
	if promo.PerGuestLimit != nil && ctx.GuestUses >= *promo.PerGuestLimit {
		return &PromoError{Code: promo.Code, Reason: PromoGuestLimit}
	}
	if promo.MinNights != nil && ctx.Nights < *promo.MinNights {
		return &PromoError{Code: promo.Code, Reason: PromoMinNightsNotMet}
	}
	if !promo.IsActive {
		return &PromoError{Code: promo.Code, Reason: PromoInactive}
	}
	return nil
}

// ApplyPromo validates the code and computes the discount. Percentage
// discounts are capped at MaxDiscount when set; fixed discounts never
// exceed the amount being discounted, so the result has a zero floor.
// Returns the discounted amount and the discount granted.
func ApplyPromo(amount decimal.Decimal, promo models.PromoCode, ctx PromoContext, decimalPlaces int32) (decimal.Decimal, decimal.Decimal, error) {
	if err := ValidatePromo(promo, ctx); err != nil {
		return amount, decimal.Zero, err
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case models.DiscountPercentage:
		discount = amount.Mul(promo.DiscountValue).Div(hundred)
		if promo.MaxDiscount != nil && discount.GreaterThan(*promo.MaxDiscount) {
			discount = *promo.MaxDiscount
		}
	case models.DiscountFixed:
		discount = promo.DiscountValue
		if discount.GreaterThan(amount) {
			discount = amount
		}
	default:
		return amount, decimal.Zero, fmt.Errorf("unknown discount type %q on promo %s", promo.DiscountType, promo.Code)
	}

	discount = discount.Round(decimalPlaces)
	final := amount.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return final, discount, nil
}
