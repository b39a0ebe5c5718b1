package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/pricing"
)

var ErrPromoNotFound = errors.New("promo code not found")

type PromoService struct {
	DB *gorm.DB
}

func NewPromoService(db *gorm.DB) *PromoService {
	return &PromoService{DB: db}
}

// Preview validates a code and computes the discount without consuming a
// use. The booking screen calls this as the guest types.
func (ps *PromoService) Preview(code string, guestID uint, amount decimal.Decimal, nights int, decimalPlaces int32) (decimal.Decimal, decimal.Decimal, error) {
	var promo models.PromoCode
	if err := ps.DB.Where("code = ?", strings.ToUpper(code)).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return amount, decimal.Zero, ErrPromoNotFound
		}
		return amount, decimal.Zero, err
	}

	guestUses, err := ps.guestUses(ps.DB, promo.ID, guestID)
	if err != nil {
		return amount, decimal.Zero, err
	}

	ctx := pricing.PromoContext{Now: time.Now(), Nights: nights, GuestUses: guestUses}
	return pricing.ApplyPromo(amount, promo, ctx, decimalPlaces)
}

// Redeem applies a promo code and consumes one use. The usage increment is
// a guarded compare-and-increment: the UPDATE only lands while used_count
// is still under max_uses, so two concurrent bookings cannot both take the
// last use of a capped code. Not idempotent; callers must not retry on
// timeout.
func (ps *PromoService) Redeem(code string, guestID uint, folioID *uint, amount decimal.Decimal, nights int, decimalPlaces int32) (decimal.Decimal, decimal.Decimal, error) {
	final := amount
	discount := decimal.Zero

	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		var promo models.PromoCode
		if err := tx.Where("code = ?", strings.ToUpper(code)).First(&promo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromoNotFound
			}
			return err
		}

		guestUses, err := ps.guestUses(tx, promo.ID, guestID)
		if err != nil {
			return err
		}

		ctx := pricing.PromoContext{Now: time.Now(), Nights: nights, GuestUses: guestUses}
		final, discount, err = pricing.ApplyPromo(amount, promo, ctx, decimalPlaces)
		if err != nil {
			return err
		}

		res := tx.Model(&models.PromoCode{}).
			Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", promo.ID).
			Update("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return fmt.Errorf("incrementing promo usage: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Another booking grabbed the last use between our read and
			// this update.
			return &pricing.PromoError{Code: promo.Code, Reason: pricing.PromoUsageLimit}
		}

		redemption := models.PromoRedemption{
			PromoCodeID: promo.ID,
			GuestID:     guestID,
			FolioID:     folioID,
			Amount:      discount,
		}
		return tx.Create(&redemption).Error
	})
	if err != nil {
		return amount, decimal.Zero, err
	}

	return final, discount, nil
}

func (ps *PromoService) guestUses(tx *gorm.DB, promoID, guestID uint) (int, error) {
	var count int64
	if err := tx.Model(&models.PromoRedemption{}).
		Where("promo_code_id = ? AND guest_id = ?", promoID, guestID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting guest redemptions: %w", err)
	}
	return int(count), nil
}
