package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

func testCurrencies() CurrencyTable {
	return NewCurrencyTable([]models.Currency{
		{Code: "SAR", Name: "Saudi Riyal", ExchangeRate: d("1"), DecimalPlaces: 2, IsDefault: true, IsActive: true},
		{Code: "USD", Name: "US Dollar", ExchangeRate: d("0.2666"), DecimalPlaces: 2, IsActive: true},
		{Code: "KWD", Name: "Kuwaiti Dinar", ExchangeRate: d("0.0816"), DecimalPlaces: 3, IsActive: true},
		{Code: "ZWL", Name: "Zimbabwe Dollar", ExchangeRate: d("86.2"), DecimalPlaces: 2, IsActive: false},
	})
}

func TestConvertThroughBase(t *testing.T) {
	table := testCurrencies()
	got, err := table.Convert(d("100"), "SAR", "USD")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !got.Equal(d("26.66")) {
		t.Fatalf("expected 26.66 USD, got %s", got)
	}

	// Respects the target currency's decimal places
	got, err = table.Convert(d("100"), "SAR", "KWD")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got.Exponent() < -3 {
		t.Fatalf("KWD rounds to 3 places, got %s", got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	table := testCurrencies()
	amount := d("250.00")
	there, err := table.Convert(amount, "SAR", "USD")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	back, err := table.Convert(there, "USD", "SAR")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	// Within one minor unit of the smaller-precision currency
	diff := back.Sub(amount).Abs()
	if diff.GreaterThan(decimal.New(1, -2)) {
		t.Fatalf("round trip drifted %s (got %s back from %s)", diff, back, amount)
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	table := testCurrencies()

	if _, err := table.Convert(d("10"), "SAR", "XTS"); err == nil {
		t.Fatal("expected UnknownCurrencyError for unconfigured code")
	} else {
		var uce *UnknownCurrencyError
		if !errors.As(err, &uce) {
			t.Fatalf("expected *UnknownCurrencyError, got %T", err)
		}
	}

	// Inactive currencies behave like unknown ones
	if _, err := table.Convert(d("10"), "ZWL", "SAR"); err == nil {
		t.Fatal("expected inactive currency to be rejected")
	}
}

func TestConvertCaseInsensitiveCodes(t *testing.T) {
	table := testCurrencies()
	got, err := table.Convert(d("100"), "sar", "usd")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !got.Equal(d("26.66")) {
		t.Fatalf("expected 26.66, got %s", got)
	}
}
