package services

import (
	"testing"
	"time"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/pricing"
)

func seedQuoteFixtures(t *testing.T, qs *QuoteService) models.RoomType {
	t.Helper()
	db := qs.DB

	currency := models.Currency{Code: "SAR", Name: "Saudi Riyal", ExchangeRate: dec(t, "1"), DecimalPlaces: 2, IsDefault: true, IsActive: true}
	if err := db.Create(&currency).Error; err != nil {
		t.Fatalf("failed to seed currency: %v", err)
	}

	roomType := models.RoomType{Name: "Deluxe Double", Code: "DLX", BaseRate: dec(t, "100.00"), MaxOccupancy: 2, Status: "active"}
	if err := db.Create(&roomType).Error; err != nil {
		t.Fatalf("failed to seed room type: %v", err)
	}
	return roomType
}

func TestQuoteStaySeasonalPlusVAT(t *testing.T) {
	db := setupTestDB(t)
	qs := NewQuoteService(db, nil)
	roomType := seedQuoteFixtures(t, qs)

	db.Create(&models.SeasonalRate{
		RoomTypeID: roomType.ID, Name: "Summer Peak",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		ModifierType: models.ModifierPercentage, ModifierValue: dec(t, "25"),
		Priority: 1, Status: "active",
	})
	db.Create(&models.Tax{Name: "VAT", Rate: dec(t, "15"), Type: models.ModifierPercentage, AppliesTo: models.TaxAppliesAll, IsActive: true})

	quotes, err := qs.QuoteStay(time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), 1, roomType.ID)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected one nightly quote, got %d", len(quotes))
	}

	q := quotes[0]
	if !q.Subtotal.Equal(dec(t, "125.00")) || !q.TaxTotal.Equal(dec(t, "18.75")) || !q.GrandTotal.Equal(dec(t, "143.75")) {
		t.Fatalf("expected 125.00 / 18.75 / 143.75, got %s / %s / %s", q.Subtotal, q.TaxTotal, q.GrandTotal)
	}
	if q.CurrencyCode != "SAR" {
		t.Fatalf("expected SAR quote, got %s", q.CurrencyCode)
	}
}

func TestQuoteStayMultiNightCrossesSeason(t *testing.T) {
	db := setupTestDB(t)
	qs := NewQuoteService(db, nil)
	roomType := seedQuoteFixtures(t, qs)

	// Season ends mid-stay: first night modified, second night base rate
	db.Create(&models.SeasonalRate{
		RoomTypeID: roomType.ID, Name: "Festival",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ModifierType: models.ModifierPercentage, ModifierValue: dec(t, "50"),
		Priority: 1, Status: "active",
	})

	quotes, err := qs.QuoteStay(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 2, roomType.ID)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected two nightly quotes, got %d", len(quotes))
	}
	if !quotes[0].Subtotal.Equal(dec(t, "150.00")) {
		t.Fatalf("in-season night should be 150.00, got %s", quotes[0].Subtotal)
	}
	if !quotes[1].Subtotal.Equal(dec(t, "100.00")) {
		t.Fatalf("out-of-season night should be base 100.00, got %s", quotes[1].Subtotal)
	}
}

func TestQuoteStayRequiresRoomTypeAndNights(t *testing.T) {
	db := setupTestDB(t)
	qs := NewQuoteService(db, nil)
	seedQuoteFixtures(t, qs)

	if _, err := qs.QuoteStay(time.Now(), 0, 1); err == nil {
		t.Fatal("zero-night stay must be rejected")
	}
	if _, err := qs.QuoteStay(time.Now(), 1, 999); err == nil {
		t.Fatal("unknown room type must be rejected")
	}
}

func TestOccupancyPercent(t *testing.T) {
	db := setupTestDB(t)
	qs := NewQuoteService(db, nil)
	roomType := seedQuoteFixtures(t, qs)

	rooms := []models.Room{
		{RoomTypeID: roomType.ID, Number: "101", Status: "occupied"},
		{RoomTypeID: roomType.ID, Number: "102", Status: "available"},
		{RoomTypeID: roomType.ID, Number: "103", Status: "occupied"},
		{RoomTypeID: roomType.ID, Number: "104", Status: "out_of_order"},
	}
	for i := range rooms {
		if err := db.Create(&rooms[i]).Error; err != nil {
			t.Fatalf("failed to seed room: %v", err)
		}
	}

	got, err := qs.OccupancyPercent()
	if err != nil {
		t.Fatalf("occupancy failed: %v", err)
	}
	// 2 occupied of 3 sellable rooms
	if got != 66 {
		t.Fatalf("expected 66%%, got %d%%", got)
	}
}

func TestQuoteStayAppliesOccupancyRule(t *testing.T) {
	db := setupTestDB(t)
	qs := NewQuoteService(db, nil)
	roomType := seedQuoteFixtures(t, qs)

	db.Create(&models.Room{RoomTypeID: roomType.ID, Number: "201", Status: "occupied"})
	db.Create(&models.OccupancyRule{ThresholdPercent: 80, ModifierType: models.ModifierPercentage, ModifierValue: dec(t, "10"), Priority: 1, Status: "active"})

	quotes, err := qs.QuoteStay(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 1, roomType.ID)
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	// One room, occupied: 100% occupancy >= 80 threshold
	if !quotes[0].Subtotal.Equal(dec(t, "110.00")) {
		t.Fatalf("expected occupancy surcharge 110.00, got %s", quotes[0].Subtotal)
	}
	found := false
	for _, m := range quotes[0].Applied {
		if m.Source == pricing.SourceOccupancy {
			found = true
		}
	}
	if !found {
		t.Fatal("occupancy modifier missing from the applied list")
	}
}
