package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loyalty transaction types. Points is signed: earn > 0, redeem < 0,
// adjust either way.
const (
	LoyaltyEarn   = "earn"
	LoyaltyRedeem = "redeem"
	LoyaltyAdjust = "adjust"
)

type LoyaltyTier struct {
	gorm.Model
	Name      string          `json:"name" gorm:"type:varchar(50);not null"`
	MinPoints int             `json:"minPoints" gorm:"not null;index"`
	EarnRate  decimal.Decimal `json:"earnRate" gorm:"type:decimal(8,4);default:1"` // points per currency unit spent
	Status    string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
}

type LoyaltyMember struct {
	gorm.Model
	GuestName     string       `json:"guestName" gorm:"type:varchar(100);not null"`
	Email         string       `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	TierID        *uint        `json:"tierId" gorm:"index"`
	PointsBalance int          `json:"pointsBalance" gorm:"default:0"`
	Tier          *LoyaltyTier `json:"tier,omitempty" gorm:"foreignKey:TierID;references:ID"`
}

type LoyaltyReward struct {
	gorm.Model
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:text"`
	PointsCost  int             `json:"pointsCost" gorm:"not null"`
	RewardType  string          `json:"rewardType" gorm:"type:varchar(20);not null"` // discount, free_night, amenity
	RewardValue decimal.Decimal `json:"rewardValue" gorm:"type:decimal(12,4)"`
	Status      string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
}

// LoyaltyTransaction is an append-only ledger entry. BalanceAfter snapshots
// the member balance as of this entry; rows are never updated or deleted.
type LoyaltyTransaction struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	MemberID     uint      `json:"memberId" gorm:"index;not null"`
	Type         string    `json:"type" gorm:"type:varchar(20);not null"` // earn, redeem, adjust
	Points       int       `json:"points" gorm:"not null"`
	BalanceAfter int       `json:"balanceAfter" gorm:"not null"`
	Reference    string    `json:"reference" gorm:"type:varchar(36);index"` // uuid correlating to the booking/reward
	Note         string    `json:"note" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt"`
}
