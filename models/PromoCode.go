package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type PromoCode struct {
	gorm.Model
	Code          string           `json:"code" gorm:"type:varchar(30);uniqueIndex;not null"`
	Description   string           `json:"description" gorm:"type:text"`
	DiscountType  string           `json:"discountType" gorm:"type:varchar(20);not null"` // percentage, fixed
	DiscountValue decimal.Decimal  `json:"discountValue" gorm:"type:decimal(12,4);not null"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount" gorm:"type:decimal(12,4)"` // cap for percentage discounts
	ValidFrom     *time.Time       `json:"validFrom"`
	ValidTo       *time.Time       `json:"validTo"`
	MaxUses       *int             `json:"maxUses"`
	UsedCount     int              `json:"usedCount" gorm:"default:0"`
	PerGuestLimit *int             `json:"perGuestLimit"`
	MinNights     *int             `json:"minNights"`
	IsActive      bool             `json:"isActive" gorm:"default:true;index"`
}

// PromoRedemption records one successful application of a promo code.
// UsedCount on the code and these rows move together inside one transaction.
type PromoRedemption struct {
	gorm.Model
	PromoCodeID uint            `json:"promoCodeId" gorm:"index;not null"`
	GuestID     uint            `json:"guestId" gorm:"index;not null"`
	FolioID     *uint           `json:"folioId" gorm:"index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,4);not null"` // discount granted
	PromoCode   PromoCode       `json:"promoCode,omitempty" gorm:"foreignKey:PromoCodeID;references:ID"`
}
