package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

func seedDefaultCurrency(t *testing.T, db *gorm.DB) {
	t.Helper()
	currency := models.Currency{Code: "SAR", Name: "Saudi Riyal", ExchangeRate: dec(t, "1"), DecimalPlaces: 2, IsDefault: true, IsActive: true}
	if err := db.Create(&currency).Error; err != nil {
		t.Fatalf("failed to seed currency: %v", err)
	}
}

func TestPostChargeComputesTaxesAndTotals(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultCurrency(t, db)
	db.Create(&models.Tax{Name: "VAT", Rate: dec(t, "15"), Type: models.ModifierPercentage, AppliesTo: models.TaxAppliesAll, IsActive: true})

	fs := NewFolioService(db)
	folio, err := fs.Open("Sara Haddad", nil, "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if folio.CurrencyCode != "SAR" {
		t.Fatalf("expected default currency SAR, got %s", folio.CurrencyCode)
	}

	line, err := fs.PostCharge(folio.ID, "Deluxe Room x1", models.LineRoomCharge, dec(t, "125.00"), time.Now())
	if err != nil {
		t.Fatalf("post charge failed: %v", err)
	}
	if !line.TaxAmount.Equal(dec(t, "18.75")) {
		t.Fatalf("expected 18.75 tax on the line, got %s", line.TaxAmount)
	}

	var reloaded models.Folio
	db.First(&reloaded, folio.ID)
	if !reloaded.Subtotal.Equal(dec(t, "125.00")) {
		t.Fatalf("expected subtotal 125.00, got %s", reloaded.Subtotal)
	}
	if !reloaded.TaxTotal.Equal(dec(t, "18.75")) {
		t.Fatalf("expected tax total 18.75, got %s", reloaded.TaxTotal)
	}
	if !reloaded.GrandTotal.Equal(dec(t, "143.75")) {
		t.Fatalf("expected grand total 143.75, got %s", reloaded.GrandTotal)
	}
}

func TestDiscountLinesAreNotTaxed(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultCurrency(t, db)
	db.Create(&models.Tax{Name: "VAT", Rate: dec(t, "15"), Type: models.ModifierPercentage, AppliesTo: models.TaxAppliesAll, IsActive: true})

	fs := NewFolioService(db)
	folio, _ := fs.Open("Sara Haddad", nil, "")

	line, err := fs.PostCharge(folio.ID, "Promo SUMMER2026", models.LineDiscount, dec(t, "-10.00"), time.Now())
	if err != nil {
		t.Fatalf("post discount failed: %v", err)
	}
	if !line.TaxAmount.IsZero() {
		t.Fatalf("discount lines must not be taxed, got %s", line.TaxAmount)
	}
}

func TestClosedFolioRejectsCharges(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultCurrency(t, db)

	fs := NewFolioService(db)
	folio, _ := fs.Open("Sara Haddad", nil, "")

	if err := fs.Close(folio.ID); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if _, err := fs.PostCharge(folio.ID, "Minibar", models.LineExtra, dec(t, "12.00"), time.Now()); !errors.Is(err, ErrFolioNotOpen) {
		t.Fatalf("closed folio must reject charges, got %v", err)
	}
	if err := fs.RecordPayment(folio.ID, dec(t, "10")); !errors.Is(err, ErrFolioNotOpen) {
		t.Fatalf("closed folio must reject payments, got %v", err)
	}

	// No transitions out of closed
	if err := fs.Void(folio.ID); !errors.Is(err, ErrFolioNotOpen) {
		t.Fatalf("closed folio must not become void, got %v", err)
	}
	var reloaded models.Folio
	db.First(&reloaded, folio.ID)
	if reloaded.Status != models.FolioClosed {
		t.Fatalf("status changed after terminal state: %s", reloaded.Status)
	}
}

func TestVoidIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultCurrency(t, db)

	fs := NewFolioService(db)
	folio, _ := fs.Open("Walk-in", nil, "")

	if err := fs.Void(folio.ID); err != nil {
		t.Fatalf("void failed: %v", err)
	}
	if err := fs.Close(folio.ID); !errors.Is(err, ErrFolioNotOpen) {
		t.Fatalf("void folio must not close, got %v", err)
	}
}

func TestBalanceDerivedFromPayments(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultCurrency(t, db)

	fs := NewFolioService(db)
	folio, _ := fs.Open("Sara Haddad", nil, "")

	if _, err := fs.PostCharge(folio.ID, "Room", models.LineRoomCharge, dec(t, "100.00"), time.Now()); err != nil {
		t.Fatalf("post charge failed: %v", err)
	}
	if err := fs.RecordPayment(folio.ID, dec(t, "60.00")); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	var reloaded models.Folio
	db.First(&reloaded, folio.ID)
	if !reloaded.Balance().Equal(reloaded.GrandTotal.Sub(dec(t, "60.00"))) {
		t.Fatalf("balance must be grand total minus paid, got %s", reloaded.Balance())
	}
}
