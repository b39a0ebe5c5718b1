package services

import (
	"errors"
	"testing"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

func seedCurrencies(t *testing.T, cs *CurrencyService) {
	t.Helper()
	rows := []models.Currency{
		{Code: "SAR", Name: "Saudi Riyal", ExchangeRate: dec(t, "1"), DecimalPlaces: 2, IsDefault: true, IsActive: true},
		{Code: "USD", Name: "US Dollar", ExchangeRate: dec(t, "0.2666"), DecimalPlaces: 2, IsActive: true},
	}
	for i := range rows {
		if err := cs.DB.Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to seed currency %s: %v", rows[i].Code, err)
		}
	}
}

func TestSetExchangeRateAppendsHistory(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCurrencyService(db)
	seedCurrencies(t, cs)

	if err := cs.SetExchangeRate("USD", dec(t, "0.2670"), "manual"); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	if err := cs.SetExchangeRate("USD", dec(t, "0.2675"), "ota_sync"); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}

	var history []models.ExchangeRateHistory
	db.Where("currency_code = ?", "USD").Order("id ASC").Find(&history)
	if len(history) != 2 {
		t.Fatalf("expected 2 immutable history rows, got %d", len(history))
	}
	if !history[0].Rate.Equal(dec(t, "0.2670")) || history[0].Source != "manual" {
		t.Fatalf("first history row rewritten: %+v", history[0])
	}

	var currency models.Currency
	db.Where("code = ?", "USD").First(&currency)
	if !currency.ExchangeRate.Equal(dec(t, "0.2675")) {
		t.Fatalf("live rate not updated, got %s", currency.ExchangeRate)
	}
}

func TestSetExchangeRateRejectsDefaultAndUnknown(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCurrencyService(db)
	seedCurrencies(t, cs)

	if err := cs.SetExchangeRate("SAR", dec(t, "2"), "manual"); err == nil {
		t.Fatal("the default currency's rate must stay fixed at 1")
	}
	if err := cs.SetExchangeRate("XTS", dec(t, "1"), "manual"); !errors.Is(err, ErrCurrencyNotFound) {
		t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
	}
	if err := cs.SetExchangeRate("USD", dec(t, "0"), "manual"); err == nil {
		t.Fatal("non-positive rates must be rejected")
	}
}

func TestSetDefaultKeepsExactlyOne(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCurrencyService(db)
	seedCurrencies(t, cs)

	if err := cs.SetDefault("USD"); err != nil {
		t.Fatalf("set default failed: %v", err)
	}

	var defaults int64
	db.Model(&models.Currency{}).Where("is_default = ?", true).Count(&defaults)
	if defaults != 1 {
		t.Fatalf("expected exactly one default currency, got %d", defaults)
	}
	var usd models.Currency
	db.Where("code = ?", "USD").First(&usd)
	if !usd.IsDefault || !usd.ExchangeRate.Equal(dec(t, "1")) {
		t.Fatalf("new default must carry rate 1, got %s", usd.ExchangeRate)
	}
}

func TestServiceConvert(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCurrencyService(db)
	seedCurrencies(t, cs)

	got, err := cs.Convert(dec(t, "100"), "SAR", "USD")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !got.Equal(dec(t, "26.66")) {
		t.Fatalf("expected 26.66, got %s", got)
	}
}
