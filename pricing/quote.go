package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

// Quote is one night's fully computed price: resolution, composition and
// taxes in a single pass. Discounts (promo/loyalty) happen later, at
// checkout, against the quoted amount.
type Quote struct {
	Date         time.Time       `json:"date"`
	RoomTypeID   uint            `json:"roomTypeId"`
	Nights       int             `json:"nights"`
	CurrencyCode string          `json:"currencyCode"`
	BaseRate     decimal.Decimal `json:"baseRate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxTotal     decimal.Decimal `json:"taxTotal"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	Applied      []Modifier      `json:"applied"`
	Taxes        []TaxLine       `json:"taxes"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// QuoteNight runs the whole pipeline for one night's room charge:
// resolve -> compose -> taxes. Skipped rules and subtotal clamping come
// back as warnings on the quote rather than failing it.
func QuoteNight(rs RuleSet, taxes []models.Tax, in ResolveInput, baseRate decimal.Decimal, currencyCode string, decimalPlaces int32) (Quote, error) {
	q := Quote{
		Date:         in.Date,
		RoomTypeID:   in.RoomTypeID,
		Nights:       in.Nights,
		CurrencyCode: currencyCode,
		BaseRate:     baseRate,
	}

	resolution, err := Resolve(rs, in)
	if err != nil {
		return Quote{}, err
	}
	for _, s := range resolution.Skipped {
		q.Warnings = append(q.Warnings, fmt.Sprintf("skipped %s rule %d: %s", s.Source, s.RuleID, s.Detail))
	}

	composed, err := Compose(baseRate, resolution.Modifiers, decimalPlaces)
	if err != nil {
		return Quote{}, err
	}
	if composed.Clamped {
		q.Warnings = append(q.Warnings, "modifiers drove the subtotal negative; clamped to zero")
	}
	q.Subtotal = composed.Subtotal
	q.Applied = composed.Applied

	taxed, err := ApplyTaxes(q.Subtotal, taxes, models.LineRoomCharge, decimalPlaces)
	if err != nil {
		return Quote{}, err
	}
	q.TaxTotal = taxed.TaxTotal
	q.GrandTotal = taxed.GrandTotal
	q.Taxes = taxed.Breakdown

	return q, nil
}
