package services

import (
	"errors"
	"testing"
	"time"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/pricing"
)

func testIntPtr(v int) *int { return &v }

func TestRedeemConsumesOneUse(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPromoService(db)

	promo := models.PromoCode{
		Code:          "WELCOME",
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec(t, "25"),
		MaxUses:       testIntPtr(2),
		IsActive:      true,
	}
	db.Create(&promo)

	final, discount, err := ps.Redeem("welcome", 11, nil, dec(t, "200"), 2, 2)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if !discount.Equal(dec(t, "25")) || !final.Equal(dec(t, "175")) {
		t.Fatalf("expected 25 off 200, got discount %s final %s", discount, final)
	}

	var reloaded models.PromoCode
	db.First(&reloaded, promo.ID)
	if reloaded.UsedCount != 1 {
		t.Fatalf("expected used_count 1, got %d", reloaded.UsedCount)
	}
	var redemptions int64
	db.Model(&models.PromoRedemption{}).Where("promo_code_id = ?", promo.ID).Count(&redemptions)
	if redemptions != 1 {
		t.Fatalf("expected one redemption row, got %d", redemptions)
	}
}

func TestRedeemRespectsMaxUses(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPromoService(db)

	promo := models.PromoCode{
		Code:          "LASTONE",
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec(t, "10"),
		MaxUses:       testIntPtr(1),
		IsActive:      true,
	}
	db.Create(&promo)

	if _, _, err := ps.Redeem("LASTONE", 1, nil, dec(t, "100"), 1, 2); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}

	_, _, err := ps.Redeem("LASTONE", 2, nil, dec(t, "100"), 1, 2)
	var pe *pricing.PromoError
	if !errors.As(err, &pe) || pe.Reason != pricing.PromoUsageLimit {
		t.Fatalf("expected USAGE_LIMIT, got %v", err)
	}

	var reloaded models.PromoCode
	db.First(&reloaded, promo.ID)
	if reloaded.UsedCount != 1 {
		t.Fatalf("exhausted code must not over-count, got %d", reloaded.UsedCount)
	}
}

func TestRedeemPerGuestLimit(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPromoService(db)

	promo := models.PromoCode{
		Code:          "ONEEACH",
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec(t, "10"),
		PerGuestLimit: testIntPtr(1),
		IsActive:      true,
	}
	db.Create(&promo)

	if _, _, err := ps.Redeem("ONEEACH", 7, nil, dec(t, "100"), 1, 2); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}

	// Same guest again: rejected. Different guest: fine.
	_, _, err := ps.Redeem("ONEEACH", 7, nil, dec(t, "100"), 1, 2)
	var pe *pricing.PromoError
	if !errors.As(err, &pe) || pe.Reason != pricing.PromoGuestLimit {
		t.Fatalf("expected GUEST_LIMIT for repeat guest, got %v", err)
	}
	if _, _, err := ps.Redeem("ONEEACH", 8, nil, dec(t, "100"), 1, 2); err != nil {
		t.Fatalf("second guest should succeed: %v", err)
	}
}

func TestPreviewDoesNotConsume(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPromoService(db)

	promo := models.PromoCode{
		Code:          "LOOKY",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: dec(t, "20"),
		IsActive:      true,
	}
	db.Create(&promo)

	_, discount, err := ps.Preview("LOOKY", 3, dec(t, "150"), 2, 2)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !discount.Equal(dec(t, "30")) {
		t.Fatalf("expected 20%% of 150 = 30, got %s", discount)
	}

	var reloaded models.PromoCode
	db.First(&reloaded, promo.ID)
	if reloaded.UsedCount != 0 {
		t.Fatalf("preview must not consume a use, used_count %d", reloaded.UsedCount)
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPromoService(db)
	_, _, err := ps.Redeem("NOPE", 1, nil, dec(t, "100"), 1, 2)
	if !errors.Is(err, ErrPromoNotFound) {
		t.Fatalf("expected ErrPromoNotFound, got %v", err)
	}
}

func TestRedeemExpiredSurfacesReason(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPromoService(db)

	past := time.Now().Add(-24 * time.Hour)
	promo := models.PromoCode{
		Code:          "BYGONE",
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec(t, "10"),
		ValidTo:       &past,
		IsActive:      true,
	}
	db.Create(&promo)

	_, _, err := ps.Redeem("BYGONE", 1, nil, dec(t, "100"), 1, 2)
	var pe *pricing.PromoError
	if !errors.As(err, &pe) || pe.Reason != pricing.PromoExpired {
		t.Fatalf("expected EXPIRED surfaced verbatim, got %v", err)
	}
}
