package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

// CurrencyTable indexes configured currencies by upper-case code. Built
// once per request from the currencies table.
type CurrencyTable map[string]models.Currency

// NewCurrencyTable keeps only active currencies; lookups for anything else
// fail with UnknownCurrencyError.
func NewCurrencyTable(currencies []models.Currency) CurrencyTable {
	t := make(CurrencyTable, len(currencies))
	for _, c := range currencies {
		if !c.IsActive {
			continue
		}
		t[strings.ToUpper(c.Code)] = c
	}
	return t
}

// Convert moves an amount between two configured currencies. All stored
// exchange rates are relative to the one default currency, so the
// conversion goes through that implicit base: amount / rate(from) *
// rate(to), rounded to the target currency's decimal places.
func (t CurrencyTable) Convert(amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	from, ok := t[strings.ToUpper(fromCode)]
	if !ok {
		return decimal.Zero, &UnknownCurrencyError{Code: fromCode}
	}
	to, ok := t[strings.ToUpper(toCode)]
	if !ok {
		return decimal.Zero, &UnknownCurrencyError{Code: toCode}
	}
	if !from.ExchangeRate.IsPositive() || !to.ExchangeRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive exchange rate configured for %s or %s", from.Code, to.Code)
	}
	return amount.Div(from.ExchangeRate).Mul(to.ExchangeRate).Round(to.DecimalPlaces), nil
}
